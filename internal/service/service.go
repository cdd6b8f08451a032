package service

import (
	"context"

	"library-backend/internal/domain"
)

type CatalogService interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	AddBook(ctx context.Context, actor *domain.Patron, book domain.Book) error
	RemoveBook(ctx context.Context, actor *domain.Patron, id int32) error
	// SetBookStatus is used by the borrow/return flows; it bypasses the
	// administration capability check.
	SetBookStatus(ctx context.Context, id int32, status domain.BookStatus) error
}

type DirectoryService interface {
	// Authenticate looks a patron up by bare id. It is a lookup, not a
	// security boundary.
	Authenticate(ctx context.Context, patronID int32) (*domain.Patron, error)
	ListPatrons(ctx context.Context) ([]domain.Patron, error)
	AddPatron(ctx context.Context, actor *domain.Patron, patron domain.Patron) error
	RemovePatron(ctx context.Context, actor *domain.Patron, patronID int32) error
}

type AccountService interface {
	// GetAccount returns the patron's account with the fine balance
	// freshly recomputed at the role's rate.
	GetAccount(ctx context.Context, patron *domain.Patron) (*domain.Account, error)
	PayFine(ctx context.Context, patron *domain.Patron, amount int32) (int32, error)
}

// CirculationService is the engine tying the catalog, the accounts and
// the per-role policies together.
type CirculationService interface {
	Borrow(ctx context.Context, patron *domain.Patron, bookID int32) (*domain.LoanRecord, error)
	Return(ctx context.Context, patron *domain.Patron, bookID int32) error
}
