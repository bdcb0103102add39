package moredecimal

import (
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/etnz/moredecimal/date"
)

// testBook builds books for tests.
type testBook struct {
	t    *testing.T
	book *Book
	sec  *Security
}

// newTestBook returns a book with security ACME ("Acme Corp", USD) at the given
// scale, and a bank account "Checking".
func newTestBook(t *testing.T, decimals int) *testBook {
	t.Helper()
	b := NewBook()
	sec, err := NewSecurity("ACME", "Acme Corp", "USD", decimals)
	if err != nil {
		t.Fatalf("NewSecurity() error = %v", err)
	}
	if err := b.AddSecurity(sec); err != nil {
		t.Fatalf("AddSecurity() error = %v", err)
	}
	if err := b.AddAccount(nil, NewAccount("Checking", Bank, "USD")); err != nil {
		t.Fatalf("AddAccount() error = %v", err)
	}
	return &testBook{t: t, book: b, sec: sec}
}

// investment adds an investment account named name, and its holding account
// for the test security if hold is true.
func (tb *testBook) investment(name string, hold bool) (inv, holding *Account) {
	tb.t.Helper()
	inv = NewAccount(name, Investment, "USD")
	if err := tb.book.AddAccount(nil, inv); err != nil {
		tb.t.Fatalf("AddAccount(%q) error = %v", name, err)
	}
	if !hold {
		return inv, nil
	}
	holding = NewAccount(tb.sec.Name(), SecurityHolding, "USD")
	if err := tb.book.AddAccount(inv, holding); err != nil {
		tb.t.Fatalf("AddAccount(%q) error = %v", holding.Name(), err)
	}
	return inv, holding
}

// buy records a purchase of quantity units into holding, paid from the
// investment account.
func (tb *testBook) buy(id, day string, holding *Account, quantity int64) *SplitTxn {
	tb.t.Helper()
	p := NewParentTxn(id, date.MustParse(day), "buy", holding.Parent())
	s := p.AddSplit(holding, quantity, money.New(-quantity, "USD"))
	if err := tb.book.Append(p); err != nil {
		tb.t.Fatalf("Append(%q) error = %v", id, err)
	}
	return s
}
