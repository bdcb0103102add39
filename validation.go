package moredecimal

import (
	"fmt"
	"log"
)

// accountResult is the outcome of validating one security holding account:
// either staged operations or the failures that prevent staging.
type accountResult struct {
	account  *Account
	ops      []RescaleOp
	failures []*ValidationError
}

func (r accountResult) ok() bool { return len(r.failures) == 0 }

// validateAccount rescales every split posted to holding, and the running
// balance at each split's date, by shift decimal places.
//
// Exactness failures are collected in the result; every transaction is still
// checked so that all of them can be reported. The returned error is reserved
// for ledger faults.
func validateAccount(l Ledger, holding *Account, shift int, r Reporter) (accountResult, error) {
	res := accountResult{account: holding}
	txs, err := l.Transactions(holding)
	if err != nil {
		return res, fmt.Errorf("could not list transactions of %s: %w", holding.FullName(), err)
	}

	for _, tx := range txs {
		split, ok := tx.(*SplitTxn)
		if !ok {
			log.Printf("unexpected transaction in %s: %v", holding.FullName(), tx)
			report(r, CodeUnexpected, holding.FullName(), tx)
			continue
		}
		on := split.When()

		quantity, err := Rescale(split.Quantity(), shift)
		if err != nil {
			res.failures = append(res.failures, &ValidationError{Account: holding, Date: on, Err: err})
			continue
		}

		// The balance is never stored, but it must be representable too.
		balance, err := l.BalanceAsOf(holding, on)
		if err != nil {
			return res, fmt.Errorf("could not compute balance of %s on %s: %w", holding.FullName(), on, err)
		}
		if _, err := Rescale(balance, shift); err != nil {
			res.failures = append(res.failures, &ValidationError{Account: holding, Date: on, Balance: true, Err: err})
			continue
		}

		res.ops = append(res.ops, RescaleOp{split: split, quantity: quantity})
	}
	return res, nil
}
