package moredecimal

import (
	"fmt"
	"log"
)

// Outcome is the result of Session.BeginChange.
type Outcome int

const (
	// NoChange means the security already has the requested decimal places.
	NoChange Outcome = iota
	// Ready means every transaction validated and the change is staged.
	Ready
	// Rejected means at least one transaction cannot be rescaled. Nothing is staged.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case NoChange:
		return "no change"
	case Ready:
		return "ready"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// sessionState is either idle{} or a *stagedChange.
type sessionState interface {
	pending() bool
}

type idle struct{}

func (idle) pending() bool { return false }

func (*stagedChange) pending() bool { return true }

// Session changes the number of decimal places of one security at a time.
//
// A Session is idle until BeginChange validates a change, which is then
// staged until Commit or Discard. It is not safe for concurrent use, and no
// other writer may modify the security's transactions while a change is
// staged.
type Session struct {
	ledger   Ledger
	reporter Reporter
	journal  Journal
	state    sessionState
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every commit in j before the ledger is modified.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// NewSession returns an idle session over l. Status lines are sent to r,
// which may be nil.
func NewSession(l Ledger, r Reporter, opts ...Option) *Session {
	s := &Session{ledger: l, reporter: r, state: idle{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginChange validates changing sec to decimals decimal places and stages
// the change if every transaction can be rescaled exactly.
//
// Exactness failures are not errors: they are reported as status lines and
// the outcome is Rejected. The error is reserved for invalid arguments and
// ledger faults.
func (s *Session) BeginChange(sec *Security, decimals int) (Outcome, error) {
	if decimals < 0 {
		return Rejected, fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
	}
	if s.state.pending() {
		return Rejected, ErrChangePending
	}
	if decimals == sec.Decimals() {
		report(s.reporter, CodeNoChange, sec.Name(), decimals)
		return NoChange, nil
	}

	staged, err := stageAll(s.ledger, sec, decimals, s.reporter)
	if aborted, ok := isAborted(err); ok {
		for _, f := range aborted.Failures {
			report(s.reporter, CodeInexact, f.Err, decimals, f.Account.FullName(), f.Date.Medium())
		}
		return Rejected, nil
	}
	if err != nil {
		return Rejected, fmt.Errorf("could not validate decimal change of %s: %w", sec.Ticker(), err)
	}

	s.state = staged
	report(s.reporter, CodeReady, sec.Name(), staged.from, staged.to)
	return Ready, nil
}

// Commit applies the staged change to the ledger. The session is idle
// afterwards, whether the commit succeeded or not.
func (s *Session) Commit() (Report, error) {
	staged, ok := s.state.(*stagedChange)
	if !ok {
		return Report{}, ErrNothingStaged
	}
	defer s.reset()

	if s.journal != nil {
		if err := s.journal.Record(journalEntryOf(staged)); err != nil {
			return Report{}, fmt.Errorf("could not journal decimal change of %s: %w", staged.security.Ticker(), err)
		}
	}

	rep, err := commitStaged(s.ledger, staged)
	if err != nil {
		report(s.reporter, CodeCommitFailed, err)
		return rep, err
	}

	if s.journal != nil {
		if err := s.journal.Clear(); err != nil {
			log.Printf("warning: could not clear journal after commit: %v", err)
		}
	}
	report(s.reporter, CodeCommitted,
		rep.Transactions, sUnless1(rep.Transactions),
		rep.Accounts, sUnless1(rep.Accounts),
		staged.security.Name(), rep.Decimals)
	return rep, nil
}

// Discard forgets the staged change, if any, without touching the ledger.
func (s *Session) Discard() {
	if staged, ok := s.state.(*stagedChange); ok {
		report(s.reporter, CodeDiscarded, staged.security.Name(), staged.to)
	}
	s.reset()
}

func (s *Session) reset() { s.state = idle{} }

// IsPending reports whether a change is staged.
func (s *Session) IsPending() bool { return s.state.pending() }

// Pending returns the staged change.
func (s *Session) Pending() (Change, bool) {
	staged, ok := s.state.(*stagedChange)
	if !ok {
		return Change{}, false
	}
	return staged.change(), true
}
