package repository

import (
	"context"

	"library-backend/internal/domain"
)

// BookRepository persists the catalog. SaveAll rewrites the whole store;
// there is no incremental diff.
type BookRepository interface {
	LoadAll(ctx context.Context) ([]domain.Book, error)
	SaveAll(ctx context.Context, books []domain.Book) error
}

// PatronRepository persists the patron directory.
type PatronRepository interface {
	LoadAll(ctx context.Context) ([]domain.Patron, error)
	SaveAll(ctx context.Context, patrons []domain.Patron) error
}

// LedgerRepository persists per-patron loan ledgers, one keyed store per
// patron id so each ledger stays an exclusively-owned unit.
type LedgerRepository interface {
	LoadRecords(ctx context.Context, patronID int32) ([]domain.LoanRecord, error)
	SaveRecords(ctx context.Context, patronID int32, records []domain.LoanRecord) error
}
