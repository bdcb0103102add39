package moredecimal

import (
	"errors"
	"slices"
)

// stagedChange is a fully validated decimal change, ready to commit.
type stagedChange struct {
	security *Security
	from, to int
	ops      []RescaleOp
	accounts int // number of accounts holding the security
}

// stageAll validates every account holding sec and folds the per-account
// results into a single staged change.
//
// Any failure aborts the whole change with an *AbortedError: operations
// collected from accounts that did validate are dropped. Other errors are
// ledger faults.
func stageAll(l Ledger, sec *Security, to int, r Reporter) (*stagedChange, error) {
	shift := to - sec.Decimals()
	staged := &stagedChange{security: sec, from: sec.Decimals(), to: to}
	var failures []*ValidationError

	for inv := range l.Accounts(Investment) {
		holding, ok := l.SubAccount(inv, sec.Name())
		if !ok {
			continue
		}
		res, err := validateAccount(l, holding, shift, r)
		if err != nil {
			return nil, err
		}
		if !res.ok() {
			failures = append(failures, res.failures...)
			continue
		}
		report(r, CodeStaged, len(res.ops), sUnless1(len(res.ops)), inv.Name())
		staged.ops = append(staged.ops, res.ops...)
		staged.accounts++
	}

	if len(failures) > 0 {
		return nil, &AbortedError{Failures: failures}
	}
	return staged, nil
}

// Change describes a staged decimal change.
type Change struct {
	Security *Security
	From, To int
	Accounts int
	Ops      []RescaleOp
}

func (s *stagedChange) change() Change {
	return Change{
		Security: s.security,
		From:     s.from,
		To:       s.to,
		Accounts: s.accounts,
		Ops:      slices.Clone(s.ops),
	}
}

// isAborted reports whether err is a validation abort rather than a fault.
func isAborted(err error) (*AbortedError, bool) {
	var aborted *AbortedError
	ok := errors.As(err, &aborted)
	return aborted, ok
}
