package moredecimal

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/etnz/moredecimal/date"
)

// Txn is an entry returned when listing the transactions of an account.
//
// The only shape expected in a security holding account is *SplitTxn. Other
// implementations are reported and skipped by the decimal change.
type Txn interface {
	When() date.Date   // When returns the date on which the transaction occurred.
	Account() *Account // Account returns the account the entry is posted to.
}

// ParentTxn is a ledger transaction: a dated record owning one or more splits.
type ParentTxn struct {
	id      string
	date    date.Date
	memo    string
	account *Account
	splits  []*SplitTxn
}

// NewParentTxn returns a transaction without splits. Use AddSplit to add them.
func NewParentTxn(id string, on date.Date, memo string, account *Account) *ParentTxn {
	return &ParentTxn{id: id, date: on, memo: memo, account: account}
}

// AddSplit appends a split to p and returns it.
func (p *ParentTxn) AddSplit(account *Account, quantity int64, amount *money.Money) *SplitTxn {
	s := &SplitTxn{
		parent:   p,
		index:    len(p.splits),
		account:  account,
		quantity: quantity,
		amount:   amount,
	}
	p.splits = append(p.splits, s)
	return s
}

func (p *ParentTxn) ID() string        { return p.id }
func (p *ParentTxn) When() date.Date   { return p.date }
func (p *ParentTxn) Memo() string      { return p.memo }
func (p *ParentTxn) Account() *Account { return p.account }

// Splits returns the splits of p in order.
func (p *ParentTxn) Splits() []*SplitTxn {
	splits := make([]*SplitTxn, len(p.splits))
	copy(splits, p.splits)
	return splits
}

// Split returns the i-th split, or nil if out of range.
func (p *ParentTxn) Split(i int) *SplitTxn {
	if i < 0 || i >= len(p.splits) {
		return nil
	}
	return p.splits[i]
}

func (p *ParentTxn) String() string {
	return fmt.Sprintf("%s %s %q", p.id, p.date, p.memo)
}

// SplitTxn is a line item of a ParentTxn. Its quantity is an integer at the
// scale of the security held by its account.
type SplitTxn struct {
	parent   *ParentTxn
	index    int
	account  *Account
	quantity int64
	amount   *money.Money
}

func (s *SplitTxn) Parent() *ParentTxn   { return s.parent }
func (s *SplitTxn) When() date.Date      { return s.parent.date }
func (s *SplitTxn) Account() *Account    { return s.account }
func (s *SplitTxn) Quantity() int64      { return s.quantity }
func (s *SplitTxn) Amount() *money.Money { return s.amount }

// Index returns the position of s in its parent.
func (s *SplitTxn) Index() int { return s.index }

func (s *SplitTxn) setQuantity(q int64) { s.quantity = q }

func (s *SplitTxn) String() string {
	return fmt.Sprintf("%s#%d %s", s.parent.id, s.index, s.account.FullName())
}

// RescaleOp is a validated, not yet applied, quantity change of a split.
type RescaleOp struct {
	split    *SplitTxn
	quantity int64
}

// Split returns the split to change.
func (op RescaleOp) Split() *SplitTxn { return op.split }

// Quantity returns the split quantity at the new scale.
func (op RescaleOp) Quantity() int64 { return op.quantity }
