package service

import (
	"context"
	"errors"
	"sync"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/policy"
)

// circulationService orchestrates borrow and return: policy gate, then
// availability gate, then ledger before catalog. The two stores have no
// cross-store transaction, so the ledger is always written first and the
// catalog second; a crash in between leaves an open loan for a book
// still marked Available, which a replayed return reconciles.
type circulationService struct {
	catalog  CatalogService
	accounts *AccountManager

	// Serializes borrow/return so the policy check and the mutation act
	// on the same account state.
	mu sync.Mutex
}

func NewCirculationService(catalog CatalogService, accounts *AccountManager) CirculationService {
	return &circulationService{catalog: catalog, accounts: accounts}
}

func (s *circulationService) Borrow(ctx context.Context, patron *domain.Patron, bookID int32) (*domain.LoanRecord, error) {
	pol, err := policy.ForRole(patron.Role)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Fines are recomputed before the eligibility check so a loan that
	// went overdue since the last operation blocks the borrow.
	if _, err := s.accounts.CalculateFines(ctx, patron); err != nil {
		return nil, err
	}
	acct, err := s.accounts.GetAccount(ctx, patron)
	if err != nil {
		return nil, err
	}
	if err := pol.CanBorrow(acct, s.accounts.now()); err != nil {
		return nil, err
	}

	book, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.Status != domain.BookStatusAvailable {
		return nil, domain.ErrBookUnavailable
	}

	rec, err := s.accounts.Borrow(ctx, patron, bookID, pol.LoanTermDays())
	if err != nil {
		return nil, err
	}
	if err := s.catalog.SetBookStatus(ctx, bookID, domain.BookStatusBorrowed); err != nil {
		return nil, err
	}
	logger.Info("Book borrowed", "patron_id", patron.ID, "book_id", bookID, "due_at", rec.DueAt)
	return rec, nil
}

func (s *circulationService) Return(ctx context.Context, patron *domain.Patron, bookID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	surcharge, err := s.accounts.ReturnLoan(ctx, patron, bookID)
	if err != nil {
		return err
	}

	// The book may have been removed from the catalog while on loan;
	// the return still succeeds.
	if err := s.catalog.SetBookStatus(ctx, bookID, domain.BookStatusAvailable); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	logger.Info("Book returned", "patron_id", patron.ID, "book_id", bookID, "surcharge", surcharge)
	return nil
}
