package moredecimal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/moredecimal/date"
)

var (
	// ErrInvalidDecimals is returned for a negative number of decimal places.
	ErrInvalidDecimals = errors.New("decimal places must not be negative")
	// ErrUnknownSecurity is returned when a ticker is not declared in the book.
	ErrUnknownSecurity = errors.New("unknown security")
	// ErrChangePending is returned when a change is begun while another one is staged.
	ErrChangePending = errors.New("a decimal change is already staged")
	// ErrNothingStaged is returned when committing without a staged change.
	ErrNothingStaged = errors.New("no decimal change is staged")
	// ErrJournalPending is returned when recording a change while the journal
	// of an interrupted commit has not been recovered.
	ErrJournalPending = errors.New("the journal of an interrupted commit must be recovered first")
)

// ExactnessError reports a quantity that cannot be moved by Shift decimal
// places without losing digits or overflowing a 64-bit integer.
type ExactnessError struct {
	Quantity int64
	Shift    int
	Overflow bool
}

func (e *ExactnessError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("overflow shifting %d by %d decimal places", e.Quantity, e.Shift)
	}
	return fmt.Sprintf("rounding necessary shifting %d by %d decimal places", e.Quantity, e.Shift)
}

// ValidationError locates an ExactnessError in the ledger.
type ValidationError struct {
	Account *Account  // Account is the security holding account.
	Date    date.Date // Date of the failing transaction.
	Balance bool      // Balance is true when the running balance failed, not the split itself.
	Err     error
}

func (e *ValidationError) Error() string {
	what := "transaction"
	if e.Balance {
		what = "balance"
	}
	return fmt.Sprintf("%s in %s on %s: %v", what, e.Account.FullName(), e.Date, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AbortedError is returned by validation when at least one transaction
// cannot be rescaled. Nothing is staged.
type AbortedError struct {
	Failures []*ValidationError
}

func (e *AbortedError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("decimal change aborted: %s", strings.Join(msgs, "; "))
}

func (e *AbortedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// PersistenceError reports a ledger write that failed during a commit.
//
// The commit is not retried: Applied transactions (and the security scale)
// may already be written. A journal, when configured, still holds the full
// change and can be replayed with Recover.
type PersistenceError struct {
	Security string
	Applied  int // number of transactions written before the failure
	Total    int
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("commit of %s stopped after %d of %d transactions: %v", e.Security, e.Applied, e.Total, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
