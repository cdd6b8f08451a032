package service

import (
	"context"
	"fmt"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/policy"
	"library-backend/internal/repository"
)

type directoryService struct {
	patronRepo repository.PatronRepository
}

func NewDirectoryService(patronRepo repository.PatronRepository) DirectoryService {
	return &directoryService{patronRepo: patronRepo}
}

func (s *directoryService) Authenticate(ctx context.Context, patronID int32) (*domain.Patron, error) {
	patrons, err := s.patronRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patrons {
		if patrons[i].ID == patronID {
			return &patrons[i], nil
		}
	}
	return nil, fmt.Errorf("patron %d: %w", patronID, domain.ErrNotFound)
}

func (s *directoryService) ListPatrons(ctx context.Context) ([]domain.Patron, error) {
	return s.patronRepo.LoadAll(ctx)
}

func (s *directoryService) AddPatron(ctx context.Context, actor *domain.Patron, patron domain.Patron) error {
	if !policy.CanAdminister(actor.Role) {
		return &domain.PolicyError{Reason: "only librarians manage patrons"}
	}
	if _, ok := domain.ParseRole(string(patron.Role)); !ok {
		return fmt.Errorf("unknown role %q: %w", patron.Role, domain.ErrInvalidInput)
	}

	patrons, err := s.patronRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range patrons {
		if p.ID == patron.ID {
			return fmt.Errorf("patron %d: %w", patron.ID, domain.ErrDuplicateID)
		}
	}

	patrons = append(patrons, patron)
	if err := s.patronRepo.SaveAll(ctx, patrons); err != nil {
		return err
	}
	logger.Info("Patron added", "patron_id", patron.ID, "role", patron.Role)
	return nil
}

func (s *directoryService) RemovePatron(ctx context.Context, actor *domain.Patron, patronID int32) error {
	if !policy.CanAdminister(actor.Role) {
		return &domain.PolicyError{Reason: "only librarians manage patrons"}
	}

	patrons, err := s.patronRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := patrons[:0]
	for _, p := range patrons {
		if p.ID != patronID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(patrons) {
		return fmt.Errorf("patron %d: %w", patronID, domain.ErrNotFound)
	}
	if err := s.patronRepo.SaveAll(ctx, kept); err != nil {
		return err
	}
	logger.Info("Patron removed", "patron_id", patronID)
	return nil
}
