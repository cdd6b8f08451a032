package service

import (
	"context"
	"fmt"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/policy"
	"library-backend/internal/repository"
)

type catalogService struct {
	bookRepo repository.BookRepository
}

func NewCatalogService(bookRepo repository.BookRepository) CatalogService {
	return &catalogService{bookRepo: bookRepo}
}

func (s *catalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.LoadAll(ctx)
}

func (s *catalogService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	books, err := s.bookRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
}

func (s *catalogService) AddBook(ctx context.Context, actor *domain.Patron, book domain.Book) error {
	if !policy.CanAdminister(actor.Role) {
		return &domain.PolicyError{Reason: "only librarians manage the catalog"}
	}

	books, err := s.bookRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, b := range books {
		if b.ID == book.ID {
			return fmt.Errorf("book %d: %w", book.ID, domain.ErrDuplicateID)
		}
	}

	book.Status = domain.BookStatusAvailable
	books = append(books, book)
	if err := s.bookRepo.SaveAll(ctx, books); err != nil {
		return err
	}
	logger.Info("Book added", "book_id", book.ID, "title", book.Title)
	return nil
}

func (s *catalogService) RemoveBook(ctx context.Context, actor *domain.Patron, id int32) error {
	if !policy.CanAdminister(actor.Role) {
		return &domain.PolicyError{Reason: "only librarians manage the catalog"}
	}

	books, err := s.bookRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	// Removal is unconditional: a borrowed book is removed too, the open
	// loan record stays in the patron's ledger.
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	if err := s.bookRepo.SaveAll(ctx, kept); err != nil {
		return err
	}
	logger.Info("Book removed", "book_id", id)
	return nil
}

func (s *catalogService) SetBookStatus(ctx context.Context, id int32, status domain.BookStatus) error {
	books, err := s.bookRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range books {
		if books[i].ID == id {
			books[i].Status = status
			return s.bookRepo.SaveAll(ctx, books)
		}
	}
	return fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
}
