package moredecimal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/etnz/moredecimal/date"
)

// CommandType identifies the kind of record on a line of a book file.
type CommandType string

// Record types of a book file.
const (
	CmdSecurity CommandType = "security"
	CmdAccount  CommandType = "account"
	CmdTxn      CommandType = "txn"
)

type jsplit struct {
	Account  string `json:"account"`
	Quantity int64  `json:"quantity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// record is a temporary type that has all possible fields of a line.
type record struct {
	Command CommandType `json:"command"`
	// security
	Ticker   string `json:"ticker"`
	Decimals int    `json:"decimals"`
	// account
	Name     string `json:"name"`
	Type     string `json:"type"`
	Parent   string `json:"parent"`
	Currency string `json:"currency"`
	// txn
	ID      string    `json:"id"`
	Date    date.Date `json:"date"`
	Memo    string    `json:"memo"`
	Account string    `json:"account"`
	Splits  []jsplit  `json:"splits"`
}

// DecodeBook decodes a book from a stream of JSONL data. Securities and
// accounts must be declared before the transactions that use them.
func DecodeBook(r io.Reader) (*Book, error) {
	b := NewBook()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0

	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode %q: %w", n, line, err)
		}
		if err := b.apply(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Book) apply(rec record) error {
	switch rec.Command {
	case CmdSecurity:
		sec, err := NewSecurity(rec.Ticker, rec.Name, rec.Currency, rec.Decimals)
		if err != nil {
			return err
		}
		return b.AddSecurity(sec)

	case CmdAccount:
		typ, err := ParseAccountType(rec.Type)
		if err != nil {
			return err
		}
		var parent *Account
		if rec.Parent != "" {
			var ok bool
			if parent, ok = b.Account(rec.Parent); !ok {
				return fmt.Errorf("account %q: unknown parent %q", rec.Name, rec.Parent)
			}
		}
		if typ == SecurityHolding && b.securityNamed(rec.Name) == nil {
			return fmt.Errorf("security account %q does not match any declared security", rec.Name)
		}
		return b.AddAccount(parent, NewAccount(rec.Name, typ, rec.Currency))

	case CmdTxn:
		account, ok := b.Account(rec.Account)
		if !ok {
			return fmt.Errorf("transaction %q: unknown account %q", rec.ID, rec.Account)
		}
		if rec.Date.IsZero() {
			return fmt.Errorf("transaction %q has no date", rec.ID)
		}
		p := NewParentTxn(rec.ID, rec.Date, rec.Memo, account)
		for _, js := range rec.Splits {
			sa, ok := b.Account(js.Account)
			if !ok {
				return fmt.Errorf("transaction %q: unknown split account %q", rec.ID, js.Account)
			}
			cur := js.Currency
			if cur == "" {
				cur = sa.Currency()
			}
			p.AddSplit(sa, js.Quantity, money.New(js.Amount, cur))
		}
		return b.Append(p)

	case "":
		return errors.New("missing command")
	default:
		return fmt.Errorf("unknown command %q", rec.Command)
	}
}

func (b *Book) securityNamed(name string) *Security {
	for _, sec := range b.securities {
		if sec.Name() == name {
			return sec
		}
	}
	return nil
}

// EncodeBook writes b as JSONL: securities by ticker, accounts depth first,
// then transactions in chronological order.
func EncodeBook(w io.Writer, b *Book) error {
	for sec := range b.AllSecurities() {
		var o jsonObjectWriter
		o.Append("command", CmdSecurity)
		o.Append("ticker", sec.Ticker())
		o.Append("name", sec.Name())
		o.Append("currency", sec.Currency())
		o.Append("decimals", sec.Decimals())
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	for a := range b.AllAccounts() {
		var o jsonObjectWriter
		o.Append("command", CmdAccount)
		o.Append("name", a.Name())
		o.Append("type", a.Type().String())
		o.Optional("currency", a.Currency())
		if a.Parent() != nil {
			o.Append("parent", a.Parent().FullName())
		}
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	for p := range b.ParentTxns() {
		splits := make([]json.RawMessage, 0, len(p.splits))
		for _, s := range p.splits {
			var so jsonObjectWriter
			so.Append("account", s.account.FullName())
			so.Append("quantity", s.quantity)
			if s.amount != nil {
				so.Optional("amount", s.amount.Amount())
				if cur := s.amount.Currency().Code; cur != s.account.Currency() {
					so.Append("currency", cur)
				}
			}
			raw, err := so.MarshalJSON()
			if err != nil {
				return err
			}
			splits = append(splits, raw)
		}
		var o jsonObjectWriter
		o.Append("command", CmdTxn)
		o.Append("id", p.ID())
		o.Append("date", p.When())
		o.Append("account", p.Account().FullName())
		o.Optional("memo", p.Memo())
		o.Append("splits", splits)
		if err := writeLine(w, &o); err != nil {
			return err
		}
	}
	return nil
}
