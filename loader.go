package moredecimal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// LoadBook opens and decodes a book file.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", path, err)
	}
	defer f.Close()

	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", path, err)
	}
	return b, nil
}

// SaveBook writes b to path in canonical form.
func SaveBook(path string, b *Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening book file %q for writing: %w", path, err)
	}
	defer file.Close()

	if err := EncodeBook(file, b); err != nil {
		return fmt.Errorf("error writing book file %q: %w", path, err)
	}
	return file.Close()
}

// FileStore persists a Book to its JSONL file. Syncs only mark the book as
// modified; Flush rewrites the whole file.
type FileStore struct {
	path  string
	book  *Book
	dirty bool
}

// OpenFileStore loads the book at path and attaches a FileStore to it.
func OpenFileStore(path string) (*Book, *FileStore, error) {
	b, err := LoadBook(path)
	if err != nil {
		return nil, nil, err
	}
	fs := &FileStore{path: path, book: b}
	b.SetStore(fs)
	return b, fs, nil
}

func (fs *FileStore) SaveSecurity(s *Security) error {
	log.Printf("%s: %s now has %d decimal places", fs.path, s.Ticker(), s.Decimals())
	fs.dirty = true
	return nil
}

func (fs *FileStore) SaveParent(p *ParentTxn) error {
	fs.dirty = true
	return nil
}

// Dirty reports whether the book was modified since it was loaded or flushed.
func (fs *FileStore) Dirty() bool { return fs.dirty }

// Flush rewrites the book file if it was modified.
func (fs *FileStore) Flush() error {
	if !fs.dirty {
		return nil
	}
	if err := SaveBook(fs.path, fs.book); err != nil {
		return err
	}
	fs.dirty = false
	return nil
}
