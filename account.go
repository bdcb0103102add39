package moredecimal

import (
	"fmt"
	"strings"
)

// AccountType classifies accounts. Only Investment accounts own security
// holdings.
type AccountType int

const (
	Bank AccountType = iota
	Investment
	// SecurityHolding is the sub-account of an investment account that holds one security.
	SecurityHolding
	Expense
	Income
)

func (t AccountType) String() string {
	switch t {
	case Bank:
		return "bank"
	case Investment:
		return "investment"
	case SecurityHolding:
		return "security"
	case Expense:
		return "expense"
	case Income:
		return "income"
	default:
		return "unknown"
	}
}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(s) {
	case "bank":
		return Bank, nil
	case "investment":
		return Investment, nil
	case "security":
		return SecurityHolding, nil
	case "expense":
		return Expense, nil
	case "income":
		return Income, nil
	default:
		return 0, fmt.Errorf("unknown account type: %q", s)
	}
}

// AccountSeparator separates account names in a full account name.
const AccountSeparator = ":"

// Account is a node of the book's account tree.
type Account struct {
	name     string
	typ      AccountType
	currency string
	parent   *Account
	subs     []*Account
}

// NewAccount returns a detached account. Use Book.AddAccount to attach it.
func NewAccount(name string, typ AccountType, currency string) *Account {
	return &Account{name: name, typ: typ, currency: currency}
}

func (a *Account) Name() string      { return a.name }
func (a *Account) Type() AccountType { return a.typ }
func (a *Account) Currency() string  { return a.currency }
func (a *Account) Parent() *Account  { return a.parent }

// FullName returns the path of the account from the top of the tree, like
// "Brokerage:Acme Corp".
func (a *Account) FullName() string {
	if a.parent == nil {
		return a.name
	}
	return a.parent.FullName() + AccountSeparator + a.name
}

// SubAccounts returns the direct sub-accounts in insertion order.
func (a *Account) SubAccounts() []*Account {
	subs := make([]*Account, len(a.subs))
	copy(subs, a.subs)
	return subs
}

// SubAccount returns the direct sub-account with that name.
func (a *Account) SubAccount(name string) (*Account, bool) {
	for _, sub := range a.subs {
		if sub.name == name {
			return sub, true
		}
	}
	return nil, false
}

func (a *Account) addSub(sub *Account) error {
	if sub.parent != nil {
		return fmt.Errorf("account %q already belongs to %q", sub.name, sub.parent.FullName())
	}
	if _, exists := a.SubAccount(sub.name); exists {
		return fmt.Errorf("account %q already has a sub-account %q", a.FullName(), sub.name)
	}
	sub.parent = a
	a.subs = append(a.subs, sub)
	return nil
}

func (a *Account) String() string { return a.FullName() }

