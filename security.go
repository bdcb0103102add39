package moredecimal

import (
	"fmt"
	"regexp"
)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Security is a tradable asset whose quantities are stored as integers at a
// fixed number of decimal places.
type Security struct {
	ticker   string // The human-friendly ticker used in the book.
	name     string // Display name, also the name of the holding sub-accounts.
	currency string // The currency in which the security is traded.
	decimals int    // Number of fractional digits of stored quantities.
}

// NewSecurity validates and returns a new Security.
func NewSecurity(ticker, name, currency string, decimals int) (*Security, error) {
	if ticker == "" {
		return nil, fmt.Errorf("security ticker is missing")
	}
	if name == "" {
		return nil, fmt.Errorf("security %q has no name", ticker)
	}
	if !currencyCodeRegex.MatchString(currency) {
		return nil, fmt.Errorf("invalid currency for %q: must be 3 uppercase letters, got %q", ticker, currency)
	}
	if decimals < 0 {
		return nil, fmt.Errorf("security %q: %w: %d", ticker, ErrInvalidDecimals, decimals)
	}
	return &Security{ticker: ticker, name: name, currency: currency, decimals: decimals}, nil
}

// Ticker returns the human-friendly ticker symbol of the security.
func (s *Security) Ticker() string { return s.ticker }

// Name returns the display name of the security.
func (s *Security) Name() string { return s.name }

// Currency returns the currency in which the security is traded.
func (s *Security) Currency() string { return s.currency }

// Decimals returns the current scale of the security quantities.
func (s *Security) Decimals() int { return s.decimals }

// Format returns units as a decimal string at the security's scale.
func (s *Security) Format(units int64) string { return FormatUnits(units, s.decimals) }

func (s *Security) String() string { return fmt.Sprintf("%s (%s)", s.name, s.ticker) }

// setDecimals is only called by a commit or a journal replay.
func (s *Security) setDecimals(n int) { s.decimals = n }
