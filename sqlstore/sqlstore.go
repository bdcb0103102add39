// Package sqlstore persists a moredecimal book in a SQL database through GORM.
//
// The schema has one table per record kind: securities, accounts, parents
// and splits. A Store is attached to the book it loads, so that every record
// synced during a commit is written back row by row.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rhymond/go-money"
	"github.com/etnz/moredecimal"
	"github.com/etnz/moredecimal/date"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a synced record has no row in the database.
var ErrNotFound = errors.New("record not found")

// Store is a moredecimal.Store backed by a GORM database.
type Store struct {
	db *gorm.DB
}

var _ moredecimal.Store = (*Store)(nil)

// Open opens the SQLite database at dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", dsn, err)
	}
	return New(db)
}

// New wraps an open database and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&securityRow{},
		&accountRow{},
		&parentRow{},
		&splitRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB returns the underlying database.
func (s *Store) DB() *gorm.DB { return s.db }

// Import replaces the content of the database with b.
func (s *Store) Import(ctx context.Context, b *moredecimal.Book) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&splitRow{}, &parentRow{}, &accountRow{}, &securityRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		var securities []securityRow
		for sec := range b.AllSecurities() {
			securities = append(securities, securityRow{
				Ticker:   sec.Ticker(),
				Name:     sec.Name(),
				Currency: sec.Currency(),
				Decimals: sec.Decimals(),
			})
		}
		var accounts []accountRow
		for a := range b.AllAccounts() {
			row := accountRow{
				FullName: a.FullName(),
				Seq:      len(accounts),
				Name:     a.Name(),
				Type:     a.Type().String(),
				Currency: a.Currency(),
			}
			if a.Parent() != nil {
				row.Parent = a.Parent().FullName()
			}
			accounts = append(accounts, row)
		}
		var parents []parentRow
		var splits []splitRow
		for p := range b.ParentTxns() {
			parents = append(parents, parentRow{
				ID:      p.ID(),
				Seq:     len(parents),
				Date:    p.When().String(),
				Memo:    p.Memo(),
				Account: p.Account().FullName(),
			})
			for _, sp := range p.Splits() {
				splits = append(splits, splitRowOf(sp))
			}
		}

		for _, rows := range []struct {
			n     int
			value any
		}{
			{len(securities), &securities},
			{len(accounts), &accounts},
			{len(parents), &parents},
			{len(splits), &splits},
		} {
			if rows.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(rows.value, 100).Error; err != nil {
				return err
			}
		}
		log.Printf("imported %d securities, %d accounts and %d transactions", len(securities), len(accounts), len(parents))
		return nil
	})
}

func splitRowOf(sp *moredecimal.SplitTxn) splitRow {
	row := splitRow{
		ParentID: sp.Parent().ID(),
		SplitNo:  sp.Index(),
		Account:  sp.Account().FullName(),
		Quantity: sp.Quantity(),
	}
	if amount := sp.Amount(); amount != nil {
		row.HasAmount = true
		row.Amount = amount.Amount()
		row.Currency = amount.Currency().Code
	}
	return row
}

// Load reads the whole book and attaches s as its store.
func (s *Store) Load(ctx context.Context) (*moredecimal.Book, error) {
	db := s.db.WithContext(ctx)
	var (
		securities []securityRow
		accounts   []accountRow
		parents    []parentRow
		splits     []splitRow
	)
	if err := db.Order("ticker ASC").Find(&securities).Error; err != nil {
		return nil, err
	}
	if err := db.Order("seq ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	if err := db.Order("seq ASC").Find(&parents).Error; err != nil {
		return nil, err
	}
	if err := db.Order("parent_id ASC, split_no ASC").Find(&splits).Error; err != nil {
		return nil, err
	}

	b := moredecimal.NewBook()
	for _, row := range securities {
		sec, err := moredecimal.NewSecurity(row.Ticker, row.Name, row.Currency, row.Decimals)
		if err != nil {
			return nil, fmt.Errorf("security %q: %w", row.Ticker, err)
		}
		if err := b.AddSecurity(sec); err != nil {
			return nil, err
		}
	}
	for _, row := range accounts {
		typ, err := moredecimal.ParseAccountType(row.Type)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", row.FullName, err)
		}
		var parent *moredecimal.Account
		if row.Parent != "" {
			var ok bool
			if parent, ok = b.Account(row.Parent); !ok {
				return nil, fmt.Errorf("account %q: unknown parent %q", row.FullName, row.Parent)
			}
		}
		if err := b.AddAccount(parent, moredecimal.NewAccount(row.Name, typ, row.Currency)); err != nil {
			return nil, err
		}
	}

	byParent := make(map[string][]splitRow)
	for _, row := range splits {
		byParent[row.ParentID] = append(byParent[row.ParentID], row)
	}
	txs := make([]*moredecimal.ParentTxn, 0, len(parents))
	for _, row := range parents {
		on, err := date.Parse(row.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %q: %w", row.ID, err)
		}
		account, ok := b.Account(row.Account)
		if !ok {
			return nil, fmt.Errorf("transaction %q: unknown account %q", row.ID, row.Account)
		}
		p := moredecimal.NewParentTxn(row.ID, on, row.Memo, account)
		for i, sr := range byParent[row.ID] {
			if sr.SplitNo != i {
				return nil, fmt.Errorf("transaction %q: missing split %d", row.ID, i)
			}
			sa, ok := b.Account(sr.Account)
			if !ok {
				return nil, fmt.Errorf("transaction %q: unknown split account %q", row.ID, sr.Account)
			}
			var amount *money.Money
			if sr.HasAmount {
				amount = money.New(sr.Amount, sr.Currency)
			}
			p.AddSplit(sa, sr.Quantity, amount)
		}
		txs = append(txs, p)
	}
	if err := b.Append(txs...); err != nil {
		return nil, err
	}
	b.SetStore(s)
	return b, nil
}

// SaveSecurity updates the decimal places of the security's row.
func (s *Store) SaveSecurity(sec *moredecimal.Security) error {
	result := s.db.Model(&securityRow{}).
		Where("ticker = ?", sec.Ticker()).
		Update("decimals", sec.Decimals())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("security %q: %w", sec.Ticker(), ErrNotFound)
	}
	return nil
}

// SaveParent updates the quantity of every split of p in a single
// transaction.
func (s *Store) SaveParent(p *moredecimal.ParentTxn) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, sp := range p.Splits() {
			result := tx.Model(&splitRow{}).
				Where("parent_id = ? AND split_no = ?", p.ID(), sp.Index()).
				Update("quantity", sp.Quantity())
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("split %s#%d: %w", p.ID(), sp.Index(), ErrNotFound)
			}
		}
		return nil
	})
}
