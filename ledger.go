package moredecimal

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/etnz/moredecimal/date"
)

// Ledger is what a decimal change needs from the book it rewrites.
//
// Read methods enumerate in a stable order. Sync methods persist a record
// after it was modified in memory. Any error they return is a system fault,
// never an exactness problem.
type Ledger interface {
	// Accounts iterates depth first over accounts of type t.
	Accounts(t AccountType) iter.Seq[*Account]
	// SubAccount returns the direct sub-account of parent with that name.
	SubAccount(parent *Account, name string) (*Account, bool)
	// Transactions lists the entries posted to a, in chronological order.
	Transactions(a *Account) ([]Txn, error)
	// BalanceAsOf sums the quantities posted to a up to and including day on.
	BalanceAsOf(a *Account, on date.Date) (int64, error)
	SyncSecurity(s *Security) error
	SyncTxn(p *ParentTxn) error
}

// Store persists modified records of a Book.
type Store interface {
	SaveSecurity(s *Security) error
	SaveParent(p *ParentTxn) error
}

// Book is an in-memory ledger: securities, an account tree and transactions.
//
// In a Book transactions are always in chronological order.
type Book struct {
	securities map[string]*Security // index securities by ticker
	top        []*Account
	parents    []*ParentTxn
	byID       map[string]*ParentTxn
	store      Store
}

var _ Ledger = (*Book)(nil)

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		securities: make(map[string]*Security),
		byID:       make(map[string]*ParentTxn),
	}
}

// SetStore sets the store that receives synced records. A nil store makes
// syncs no-ops.
func (b *Book) SetStore(s Store) { b.store = s }

// AddSecurity declares a security.
func (b *Book) AddSecurity(s *Security) error {
	if _, exists := b.securities[s.Ticker()]; exists {
		return fmt.Errorf("security %q is already declared", s.Ticker())
	}
	for _, other := range b.securities {
		if other.Name() == s.Name() {
			return fmt.Errorf("security %q has the same name as %q", s.Ticker(), other.Ticker())
		}
	}
	b.securities[s.Ticker()] = s
	return nil
}

// Security returns the security declared with this ticker, or nil if unknown.
func (b *Book) Security(ticker string) *Security { return b.securities[ticker] }

// AllSecurities iterates over securities sorted by ticker.
func (b *Book) AllSecurities() iter.Seq[*Security] {
	return func(yield func(*Security) bool) {
		tickers := slices.Collect(maps.Keys(b.securities))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(b.securities[ticker]) {
				return
			}
		}
	}
}

// AddAccount attaches a to parent, or at the top of the tree if parent is nil.
func (b *Book) AddAccount(parent, a *Account) error {
	if a.name == "" || strings.Contains(a.name, AccountSeparator) {
		return fmt.Errorf("invalid account name %q", a.name)
	}
	if a.typ == SecurityHolding {
		if parent == nil || parent.typ != Investment {
			return fmt.Errorf("security account %q must be under an investment account", a.name)
		}
	}
	if parent != nil {
		return parent.addSub(a)
	}
	for _, top := range b.top {
		if top.name == a.name {
			return fmt.Errorf("account %q already exists", a.name)
		}
	}
	b.top = append(b.top, a)
	return nil
}

// Account returns the account with that full name.
func (b *Book) Account(fullName string) (*Account, bool) {
	for a := range b.AllAccounts() {
		if a.FullName() == fullName {
			return a, true
		}
	}
	return nil, false
}

// AllAccounts iterates depth first over every account.
func (b *Book) AllAccounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		var walk func(accounts []*Account) bool
		walk = func(accounts []*Account) bool {
			for _, a := range accounts {
				if !yield(a) || !walk(a.subs) {
					return false
				}
			}
			return true
		}
		walk(b.top)
	}
}

// Accounts iterates depth first over accounts of type t.
func (b *Book) Accounts(t AccountType) iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for a := range b.AllAccounts() {
			if a.typ == t && !yield(a) {
				return
			}
		}
	}
}

// SubAccount returns the direct sub-account of parent with that name.
func (b *Book) SubAccount(parent *Account, name string) (*Account, bool) {
	return parent.SubAccount(name)
}

// HoldingAccounts iterates over the accounts holding sec.
func (b *Book) HoldingAccounts(sec *Security) iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for inv := range b.Accounts(Investment) {
			if holding, ok := inv.SubAccount(sec.Name()); ok && holding.typ == SecurityHolding {
				if !yield(holding) {
					return
				}
			}
		}
	}
}

// Append adds transactions to this book and maintains the chronological order.
func (b *Book) Append(txs ...*ParentTxn) error {
	for _, p := range txs {
		if p.id == "" {
			return fmt.Errorf("transaction on %s has no id", p.date)
		}
		if _, exists := b.byID[p.id]; exists {
			return fmt.Errorf("duplicate transaction id %q", p.id)
		}
		b.byID[p.id] = p
		b.parents = append(b.parents, p)
	}
	b.stableSort()
	return nil
}

// stableSort sorts the book by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (b *Book) stableSort() {
	sort.SliceStable(b.parents, func(i, j int) bool {
		return b.parents[i].date.Before(b.parents[j].date)
	})
}

// Txn returns the transaction with that id, or nil.
func (b *Book) Txn(id string) *ParentTxn { return b.byID[id] }

// ParentTxns iterates over transactions in chronological order.
func (b *Book) ParentTxns() iter.Seq[*ParentTxn] { return slices.Values(b.parents) }

// Transactions lists entries posted to a: the splits on a, and any parent
// transaction whose own account is a.
func (b *Book) Transactions(a *Account) ([]Txn, error) {
	var txs []Txn
	for _, p := range b.parents {
		if p.account == a {
			txs = append(txs, p)
		}
		for _, s := range p.splits {
			if s.account == a {
				txs = append(txs, s)
			}
		}
	}
	return txs, nil
}

// BalanceAsOf sums the split quantities posted to a up to and including on.
func (b *Book) BalanceAsOf(a *Account, on date.Date) (int64, error) {
	var balance int64
	for _, p := range b.parents {
		if p.date.After(on) {
			// The book is sorted by date, so it's safe to break.
			break
		}
		for _, s := range p.splits {
			if s.account == a {
				balance += s.quantity
			}
		}
	}
	return balance, nil
}

// SyncSecurity persists s through the book's store.
func (b *Book) SyncSecurity(s *Security) error {
	if b.store == nil {
		return nil
	}
	return b.store.SaveSecurity(s)
}

// SyncTxn persists p through the book's store.
func (b *Book) SyncTxn(p *ParentTxn) error {
	if b.store == nil {
		return nil
	}
	return b.store.SaveParent(p)
}
