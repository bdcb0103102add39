package moredecimal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// JournalEntry is the write-ahead record of a decimal change. Every
// operation is an absolute assignment, so replaying an entry is idempotent.
type JournalEntry struct {
	Security string // ticker
	From, To int
	Ops      []JournalOp
}

// JournalOp sets the quantity of one split.
type JournalOp struct {
	Txn      string // parent transaction id
	Split    int    // split index in the parent
	Quantity int64  // quantity at the new scale
}

// Journal records a change before it is committed, and forgets it once the
// commit completed. Record must not overwrite an entry that was not cleared.
type Journal interface {
	Record(e JournalEntry) error
	Clear() error
}

func journalEntryOf(c *stagedChange) JournalEntry {
	e := JournalEntry{Security: c.security.Ticker(), From: c.from, To: c.to}
	for _, op := range c.ops {
		e.Ops = append(e.Ops, JournalOp{
			Txn:      op.split.Parent().ID(),
			Split:    op.split.Index(),
			Quantity: op.quantity,
		})
	}
	return e
}

const (
	journalHeader = "rescale"
	journalOp     = "set-quantity"
)

// EncodeJournal writes e as JSONL: a header line, then one line per operation.
func EncodeJournal(w io.Writer, e JournalEntry) error {
	var h jsonObjectWriter
	h.Append("command", journalHeader)
	h.Append("security", e.Security)
	h.Append("from", e.From)
	h.Append("to", e.To)
	h.Append("count", len(e.Ops))
	if err := writeLine(w, &h); err != nil {
		return err
	}
	for _, op := range e.Ops {
		var l jsonObjectWriter
		l.Append("command", journalOp)
		l.Append("txn", op.Txn)
		l.Append("split", op.Split)
		l.Append("quantity", op.Quantity)
		if err := writeLine(w, &l); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJournal reads an entry written by EncodeJournal. A journal whose
// operation count does not match its header is truncated and rejected.
func DecodeJournal(r io.Reader) (JournalEntry, error) {
	var e JournalEntry
	scanner := bufio.NewScanner(r)
	count, header := 0, false

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec struct {
			Command  string `json:"command"`
			Security string `json:"security"`
			From     int    `json:"from"`
			To       int    `json:"to"`
			Count    int    `json:"count"`
			Txn      string `json:"txn"`
			Split    int    `json:"split"`
			Quantity int64  `json:"quantity"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			return e, fmt.Errorf("invalid journal line %q: %w", line, err)
		}
		switch rec.Command {
		case journalHeader:
			if header {
				return e, errors.New("journal has more than one header")
			}
			header = true
			e.Security, e.From, e.To, count = rec.Security, rec.From, rec.To, rec.Count
		case journalOp:
			if !header {
				return e, errors.New("journal operation before header")
			}
			e.Ops = append(e.Ops, JournalOp{Txn: rec.Txn, Split: rec.Split, Quantity: rec.Quantity})
		default:
			return e, fmt.Errorf("unknown journal command %q", rec.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return e, err
	}
	if !header {
		return e, errors.New("journal is empty")
	}
	if count != len(e.Ops) {
		return e, fmt.Errorf("journal is truncated: %d of %d operations", len(e.Ops), count)
	}
	return e, nil
}

// FileJournal keeps the journal in a single file that exists only while a
// commit is in progress or was interrupted.
type FileJournal struct {
	path string
}

// NewFileJournal returns a journal stored at path.
func NewFileJournal(path string) *FileJournal { return &FileJournal{path: path} }

// Path returns the journal file path.
func (j *FileJournal) Path() string { return j.path }

// Record writes e to the journal file and syncs it to disk. It fails with
// ErrJournalPending if the file already exists.
func (j *FileJournal) Record(e JournalEntry) error {
	f, err := os.OpenFile(j.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrJournalPending, j.path)
	}
	if err != nil {
		return fmt.Errorf("could not create journal %q: %w", j.path, err)
	}
	if err := EncodeJournal(f, e); err != nil {
		f.Close()
		return fmt.Errorf("could not write journal %q: %w", j.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("could not sync journal %q: %w", j.path, err)
	}
	return f.Close()
}

// Clear removes the journal file.
func (j *FileJournal) Clear() error {
	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads a leftover journal. It returns false if there is none.
func (j *FileJournal) Load() (JournalEntry, bool, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return JournalEntry{}, false, nil
	}
	if err != nil {
		return JournalEntry{}, false, err
	}
	defer f.Close()
	e, err := DecodeJournal(f)
	if err != nil {
		return e, false, fmt.Errorf("could not decode journal %q: %w", j.path, err)
	}
	return e, true, nil
}

// Recover replays a journal entry against b. Every operation is checked
// before anything is modified.
func Recover(b *Book, e JournalEntry, r Reporter) (Report, error) {
	sec := b.Security(e.Security)
	if sec == nil {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownSecurity, e.Security)
	}
	if d := sec.Decimals(); d != e.From && d != e.To {
		return Report{}, fmt.Errorf("journal changes %s from %d to %d decimal places, but it has %d", e.Security, e.From, e.To, d)
	}
	if e.To < 0 {
		return Report{}, fmt.Errorf("%w: %d", ErrInvalidDecimals, e.To)
	}

	staged := &stagedChange{security: sec, from: e.From, to: e.To}
	accounts := make(map[*Account]struct{})
	for _, op := range e.Ops {
		p := b.Txn(op.Txn)
		if p == nil {
			return Report{}, fmt.Errorf("journal references unknown transaction %q", op.Txn)
		}
		split := p.Split(op.Split)
		if split == nil {
			return Report{}, fmt.Errorf("journal references unknown split %d of transaction %q", op.Split, op.Txn)
		}
		accounts[split.Account()] = struct{}{}
		staged.ops = append(staged.ops, RescaleOp{split: split, quantity: op.Quantity})
	}
	staged.accounts = len(accounts)

	rep, err := commitStaged(b, staged)
	if err != nil {
		report(r, CodeCommitFailed, err)
		return rep, err
	}
	report(r, CodeCommitted,
		rep.Transactions, sUnless1(rep.Transactions),
		rep.Accounts, sUnless1(rep.Accounts),
		sec.Name(), rep.Decimals)
	return rep, nil
}
