package renderer

import (
	"strings"

	"github.com/etnz/moredecimal"
)

// Security is a line of the securities listing.
type Security struct {
	Ticker   string
	Name     string
	Currency string
	Decimals int
	Unit     string // smallest quantity that can be recorded
	HeldIn   string
}

// NewSecurities lists every security of b with the accounts holding it.
func NewSecurities(b *moredecimal.Book) []Security {
	var list []Security
	for sec := range b.AllSecurities() {
		var held []string
		for a := range b.HoldingAccounts(sec) {
			held = append(held, a.FullName())
		}
		list = append(list, Security{
			Ticker:   sec.Ticker(),
			Name:     escapeCell(sec.Name()),
			Currency: sec.Currency(),
			Decimals: sec.Decimals(),
			Unit:     moredecimal.FormatUnits(1, sec.Decimals()),
			HeldIn:   escapeCell(strings.Join(held, ", ")),
		})
	}
	return list
}

// RenderSecurities renders the securities listing to markdown.
func RenderSecurities(list []Security) string {
	return renderTemplate("securities", "securities.md", nil, list)
}
