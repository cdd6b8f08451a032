package service

import (
	"context"
	"sync"

	"library-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) LoadAll(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) SaveAll(ctx context.Context, books []domain.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

// MockPatronRepo
type MockPatronRepo struct {
	mock.Mock
}

func (m *MockPatronRepo) LoadAll(ctx context.Context) ([]domain.Patron, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patron), args.Error(1)
}
func (m *MockPatronRepo) SaveAll(ctx context.Context, patrons []domain.Patron) error {
	args := m.Called(ctx, patrons)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) LoadRecords(ctx context.Context, patronID int32) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, patronID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}
func (m *MockLedgerRepo) SaveRecords(ctx context.Context, patronID int32, records []domain.LoanRecord) error {
	args := m.Called(ctx, patronID, records)
	return args.Error(0)
}

// In-memory fakes for multi-step scenarios where mock expectations would
// obscure the flow.

type memBookRepo struct {
	mu    sync.Mutex
	books []domain.Book
}

func (r *memBookRepo) LoadAll(ctx context.Context) ([]domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Book(nil), r.books...), nil
}
func (r *memBookRepo) SaveAll(ctx context.Context, books []domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = append([]domain.Book(nil), books...)
	return nil
}

type memLedgerRepo struct {
	mu      sync.Mutex
	ledgers map[int32][]domain.LoanRecord
}

func newMemLedgerRepo() *memLedgerRepo {
	return &memLedgerRepo{ledgers: make(map[int32][]domain.LoanRecord)}
}

func (r *memLedgerRepo) LoadRecords(ctx context.Context, patronID int32) ([]domain.LoanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LoanRecord(nil), r.ledgers[patronID]...), nil
}
func (r *memLedgerRepo) SaveRecords(ctx context.Context, patronID int32, records []domain.LoanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgers[patronID] = append([]domain.LoanRecord(nil), records...)
	return nil
}
