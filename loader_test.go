package moredecimal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.jsonl")
	if err := os.WriteFile(path, []byte(sampleBook), 0644); err != nil {
		t.Fatal(err)
	}

	b, fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() error = %v", err)
	}
	if fs.Dirty() {
		t.Error("Dirty() = true right after loading")
	}

	s := NewSession(b, nil)
	if got, err := s.BeginChange(b.Security("ACME"), 3); err != nil || got != Ready {
		t.Fatalf("BeginChange() = %v, %v", got, err)
	}
	if _, err := s.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if !fs.Dirty() {
		t.Fatal("Dirty() = false after a commit")
	}
	if err := fs.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reloaded, err := LoadBook(path)
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	if got := reloaded.Security("ACME").Decimals(); got != 3 {
		t.Errorf("reloaded decimals = %d, want 3", got)
	}
	if got := reloaded.Txn("t1").Split(0).Quantity(); got != 123450 {
		t.Errorf("reloaded quantity = %d, want 123450", got)
	}
}

func TestLoadBook_Missing(t *testing.T) {
	_, err := LoadBook(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err == nil || !strings.Contains(err.Error(), "could not open") {
		t.Errorf("LoadBook() error = %v, want a could not open error", err)
	}
}
