package moredecimal

// Report summarizes a committed decimal change.
type Report struct {
	Security     string // ticker
	Transactions int    // number of split transactions changed
	Accounts     int    // number of accounts holding the security
	Decimals     int    // resulting scale
}

// commitStaged writes the new scale of the security, then every staged
// quantity, to the ledger.
//
// A sync failure stops the commit with a *PersistenceError. Records synced
// before the failure stay written: there is no rollback.
func commitStaged(l Ledger, c *stagedChange) (Report, error) {
	previous := c.security.Decimals()
	c.security.setDecimals(c.to)
	if err := l.SyncSecurity(c.security); err != nil {
		// Nothing else was touched yet.
		c.security.setDecimals(previous)
		return Report{}, &PersistenceError{Security: c.security.Ticker(), Total: len(c.ops), Err: err}
	}

	for i, op := range c.ops {
		op.split.setQuantity(op.quantity)
		if err := l.SyncTxn(op.split.Parent()); err != nil {
			return Report{}, &PersistenceError{Security: c.security.Ticker(), Applied: i, Total: len(c.ops), Err: err}
		}
	}

	return Report{
		Security:     c.security.Ticker(),
		Transactions: len(c.ops),
		Accounts:     c.accounts,
		Decimals:     c.to,
	}, nil
}
