// Package flatfile implements the repository interfaces over delimited
// text stores: one file for the catalog, one for the patron directory,
// and one headerless ledger file per patron. Fields are comma-separated
// with no escaping, so field values must not contain commas.
package flatfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"library-backend/internal/repository"
)

type Store struct {
	repository.BookRepository
	repository.PatronRepository
	repository.LedgerRepository
}

// NewStore creates the flat-file store rooted at dataDir, creating the
// directory if needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{
		BookRepository:   NewBookRepository(filepath.Join(dataDir, "books.csv")),
		PatronRepository: NewPatronRepository(filepath.Join(dataDir, "users.csv")),
		LedgerRepository: NewLedgerRepository(dataDir),
	}, nil
}

// readLines returns the file's non-empty lines. A missing file is not an
// error; it reads as an empty store.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// writeLines rewrites the file through a temp file and rename so a
// failed write never leaves a torn store behind.
func writeLines(path string, lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
