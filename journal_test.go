package moredecimal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJournal_EncodeDecode(t *testing.T) {
	e := JournalEntry{
		Security: "ACME",
		From:     2,
		To:       4,
		Ops: []JournalOp{
			{Txn: "t1", Split: 0, Quantity: 1234500},
			{Txn: "t2", Split: 1, Quantity: -100},
		},
	}
	var buf bytes.Buffer
	if err := EncodeJournal(&buf, e); err != nil {
		t.Fatalf("EncodeJournal() error = %v", err)
	}
	wantText := `{"command":"rescale","security":"ACME","from":2,"to":4,"count":2}
{"command":"set-quantity","txn":"t1","split":0,"quantity":1234500}
{"command":"set-quantity","txn":"t2","split":1,"quantity":-100}
`
	if diff := cmp.Diff(wantText, buf.String()); diff != "" {
		t.Errorf("EncodeJournal() mismatch (-want +got):\n%s", diff)
	}

	got, err := DecodeJournal(&buf)
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Errorf("DecodeJournal() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJournal_Truncated(t *testing.T) {
	in := `{"command":"rescale","security":"ACME","from":2,"to":4,"count":2}
{"command":"set-quantity","txn":"t1","split":0,"quantity":1234500}
`
	if _, err := DecodeJournal(strings.NewReader(in)); err == nil {
		t.Error("DecodeJournal() of a truncated journal succeeded")
	}
	if _, err := DecodeJournal(strings.NewReader("")); err == nil {
		t.Error("DecodeJournal() of an empty journal succeeded")
	}
}

func TestFileJournal(t *testing.T) {
	j := NewFileJournal(filepath.Join(t.TempDir(), "change.journal"))

	if _, found, err := j.Load(); err != nil || found {
		t.Fatalf("Load() of a missing journal = %v, %v, want not found", found, err)
	}
	e := JournalEntry{Security: "ACME", From: 2, To: 3, Ops: []JournalOp{{Txn: "t1", Quantity: 10}}}
	if err := j.Record(e); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	got, found, err := j.Load()
	if err != nil || !found {
		t.Fatalf("Load() = %v, %v, want found", found, err)
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if err := j.Record(JournalEntry{Security: "OTHER", From: 1, To: 2}); !errors.Is(err, ErrJournalPending) {
		t.Errorf("Record() over a pending journal error = %v, want %v", err, ErrJournalPending)
	}
	if err := j.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(j.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("journal file still exists after Clear(): %v", err)
	}
	if err := j.Clear(); err != nil {
		t.Errorf("Clear() of a missing journal error = %v", err)
	}
}

// TestRecover interrupts a commit with a store failure, then replays the
// journal left behind on the book as it was before the commit.
func TestRecover(t *testing.T) {
	build := func() (*testBook, *SplitTxn, *SplitTxn) {
		tb := newTestBook(t, 2)
		_, holding := tb.investment("Brokerage", true)
		s1 := tb.buy("t1", "2020-05-10", holding, 100)
		s2 := tb.buy("t2", "2020-05-11", holding, 200)
		return tb, s1, s2
	}

	tb, _, _ := build()
	tb.book.SetStore(&failingStore{ok: 1})
	j := NewFileJournal(filepath.Join(t.TempDir(), "change.journal"))
	s := NewSession(tb.book, nil, WithJournal(j))
	if got, err := s.BeginChange(tb.sec, 3); err != nil || got != Ready {
		t.Fatalf("BeginChange() = %v, %v, want %v", got, err, Ready)
	}
	var perr *PersistenceError
	if _, err := s.Commit(); !errors.As(err, &perr) {
		t.Fatalf("Commit() error = %v, want a persistence fault", err)
	}

	e, found, err := j.Load()
	if err != nil || !found {
		t.Fatalf("Load() = %v, %v, want the journal of the interrupted commit", found, err)
	}

	fresh, s1, s2 := build()
	var tr Transcript
	rep, err := Recover(fresh.book, e, &tr)
	if err != nil {
		t.Fatalf("Recover() error = %v", err)
	}
	want := Report{Security: "ACME", Transactions: 2, Accounts: 1, Decimals: 3}
	if rep != want {
		t.Errorf("Recover() = %+v, want %+v", rep, want)
	}
	if s1.Quantity() != 1000 || s2.Quantity() != 2000 || fresh.sec.Decimals() != 3 {
		t.Errorf("after Recover() quantities %d, %d, decimals %d, want 1000, 2000, 3", s1.Quantity(), s2.Quantity(), fresh.sec.Decimals())
	}
	if tr.Count(CodeCommitted) != 1 {
		t.Errorf("got %d %s messages, want 1", tr.Count(CodeCommitted), CodeCommitted)
	}

	// Replaying again is harmless.
	if _, err := Recover(fresh.book, e, nil); err != nil {
		t.Errorf("second Recover() error = %v", err)
	}
	if s2.Quantity() != 2000 {
		t.Errorf("second Recover() changed quantity to %d", s2.Quantity())
	}
}

func TestRecover_Rejects(t *testing.T) {
	tb := newTestBook(t, 2)
	_, holding := tb.investment("Brokerage", true)
	tb.buy("t1", "2020-05-10", holding, 100)

	testCases := []struct {
		name string
		e    JournalEntry
	}{
		{"unknown security", JournalEntry{Security: "XYZ", From: 2, To: 3}},
		{"foreign scale", JournalEntry{Security: "ACME", From: 5, To: 6}},
		{"unknown txn", JournalEntry{Security: "ACME", From: 2, To: 3, Ops: []JournalOp{{Txn: "nope"}}}},
		{"unknown split", JournalEntry{Security: "ACME", From: 2, To: 3, Ops: []JournalOp{{Txn: "t1", Split: 4}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Recover(tb.book, tc.e, nil); err == nil {
				t.Error("Recover() succeeded, want an error")
			}
			if tb.sec.Decimals() != 2 {
				t.Errorf("Recover() modified the security to %d decimals", tb.sec.Decimals())
			}
		})
	}
}

func TestSession_JournalClearedAfterCommit(t *testing.T) {
	tb := newTestBook(t, 2)
	_, holding := tb.investment("Brokerage", true)
	tb.buy("t1", "2020-05-10", holding, 100)

	j := NewFileJournal(filepath.Join(t.TempDir(), "change.journal"))
	s := NewSession(tb.book, nil, WithJournal(j))
	if _, err := s.BeginChange(tb.sec, 3); err != nil {
		t.Fatalf("BeginChange() error = %v", err)
	}
	if _, err := s.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if _, found, _ := j.Load(); found {
		t.Error("journal left behind after a successful commit")
	}
}

// A journal left by an interrupted commit blocks new commits until it is
// recovered.
func TestSession_PendingJournalBlocksCommit(t *testing.T) {
	tb := newTestBook(t, 2)
	_, holding := tb.investment("Brokerage", true)
	split := tb.buy("t1", "2020-05-10", holding, 100)

	j := NewFileJournal(filepath.Join(t.TempDir(), "change.journal"))
	leftover := JournalEntry{Security: "OTHER", From: 0, To: 1, Ops: []JournalOp{{Txn: "x1", Quantity: 70}}}
	if err := j.Record(leftover); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	s := NewSession(tb.book, nil, WithJournal(j))
	if got, err := s.BeginChange(tb.sec, 3); err != nil || got != Ready {
		t.Fatalf("BeginChange() = %v, %v, want Ready", got, err)
	}
	if _, err := s.Commit(); !errors.Is(err, ErrJournalPending) {
		t.Fatalf("Commit() error = %v, want %v", err, ErrJournalPending)
	}
	if split.Quantity() != 100 || tb.sec.Decimals() != 2 {
		t.Errorf("ledger modified by a blocked commit: quantity %d, decimals %d", split.Quantity(), tb.sec.Decimals())
	}
	if s.IsPending() {
		t.Error("IsPending() = true after a failed commit, want false")
	}

	got, found, err := j.Load()
	if err != nil || !found {
		t.Fatalf("Load() = %v, %v, want found", found, err)
	}
	if diff := cmp.Diff(leftover, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}
