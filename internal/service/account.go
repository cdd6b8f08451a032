package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/policy"
	"library-backend/internal/repository"
	"library-backend/internal/utils"
)

// AccountManager owns the in-memory borrowing state of every patron the
// process has touched. Ledgers are loaded lazily from the store and kept
// in sync on every mutation; the fine balance is process-lifetime state
// recomputed by policy evaluation and is never persisted.
type AccountManager struct {
	ledgerRepo repository.LedgerRepository

	mu       sync.Mutex
	accounts map[int32]*domain.Account
	nowFn    func() time.Time
}

func NewAccountManager(ledgerRepo repository.LedgerRepository) *AccountManager {
	return &AccountManager{
		ledgerRepo: ledgerRepo,
		accounts:   make(map[int32]*domain.Account),
		nowFn:      time.Now,
	}
}

// SetNowFunc replaces the clock, for tests.
func (m *AccountManager) SetNowFunc(fn func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nowFn = fn
}

func (m *AccountManager) now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nowFn()
}

// load returns the cached account, reading the ledger store on first
// access. Callers must hold m.mu.
func (m *AccountManager) load(ctx context.Context, patronID int32) (*domain.Account, error) {
	if acct, ok := m.accounts[patronID]; ok {
		return acct, nil
	}
	records, err := m.ledgerRepo.LoadRecords(ctx, patronID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for patron %d: %w", patronID, err)
	}
	acct := &domain.Account{PatronID: patronID, Records: records}
	m.accounts[patronID] = acct
	return acct, nil
}

// recompute overwrites the fine balance: the carried component plus the
// accrual over open overdue records at the given rate. Idempotent for a
// fixed now.
func recompute(acct *domain.Account, finePerDay int32, now time.Time) int32 {
	acct.FineBalance = acct.CarriedFines + utils.AccruedFines(acct.Records, finePerDay, now)
	return acct.FineBalance
}

// GetAccount returns a snapshot of the patron's account with the fine
// balance freshly recomputed at the role's rate.
func (m *AccountManager) GetAccount(ctx context.Context, patron *domain.Patron) (*domain.Account, error) {
	pol, err := policy.ForRole(patron.Role)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct, err := m.load(ctx, patron.ID)
	if err != nil {
		return nil, err
	}
	recompute(acct, pol.FinePerDay(), m.nowFn())

	snapshot := *acct
	snapshot.Records = append([]domain.LoanRecord(nil), acct.Records...)
	return &snapshot, nil
}

// CalculateFines recomputes and returns the patron's fine balance at the
// role's per-day rate.
func (m *AccountManager) CalculateFines(ctx context.Context, patron *domain.Patron) (int32, error) {
	pol, err := policy.ForRole(patron.Role)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct, err := m.load(ctx, patron.ID)
	if err != nil {
		return 0, err
	}
	return recompute(acct, pol.FinePerDay(), m.nowFn()), nil
}

// PayFine reduces the fine balance, clamping at zero. Non-positive
// amounts are rejected.
func (m *AccountManager) PayFine(ctx context.Context, patron *domain.Patron, amount int32) (int32, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("payment amount must be positive: %w", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct, err := m.load(ctx, patron.ID)
	if err != nil {
		return 0, err
	}

	acct.CarriedFines = max(acct.CarriedFines-amount, 0)
	acct.FineBalance = max(acct.FineBalance-amount, 0)
	logger.Info("Fine payment", "patron_id", patron.ID, "amount", amount, "remaining", acct.FineBalance)
	return acct.FineBalance, nil
}

// Borrow appends a loan record and persists the ledger. Eligibility is
// the caller's concern; the only check here is the ledger invariant that
// a patron holds at most one open loan per book.
func (m *AccountManager) Borrow(ctx context.Context, patron *domain.Patron, bookID, loanDays int32) (*domain.LoanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, err := m.load(ctx, patron.ID)
	if err != nil {
		return nil, err
	}
	if acct.OpenRecord(bookID) != -1 {
		return nil, fmt.Errorf("patron %d already has an open loan for book %d: %w", patron.ID, bookID, domain.ErrDuplicateID)
	}

	now := m.nowFn()
	rec := domain.LoanRecord{
		BookID:     bookID,
		BorrowedAt: now,
		DueAt:      now.Add(time.Duration(loanDays) * 24 * time.Hour),
	}

	updated := append(append([]domain.LoanRecord(nil), acct.Records...), rec)
	if err := m.ledgerRepo.SaveRecords(ctx, patron.ID, updated); err != nil {
		return nil, fmt.Errorf("failed to persist ledger for patron %d: %w", patron.ID, err)
	}
	acct.Records = updated
	return &rec, nil
}

// ReturnLoan closes the most recent open record for the book, adds the
// overdue surcharge to the carried fines, persists the ledger and
// recomputes the balance at the role's rate. Returns the surcharge
// applied. ErrNotFound means no open loan matched.
func (m *AccountManager) ReturnLoan(ctx context.Context, patron *domain.Patron, bookID int32) (int32, error) {
	pol, err := policy.ForRole(patron.Role)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct, err := m.load(ctx, patron.ID)
	if err != nil {
		return 0, err
	}
	idx := acct.OpenRecord(bookID)
	if idx == -1 {
		return 0, fmt.Errorf("no open loan for book %d: %w", bookID, domain.ErrNotFound)
	}

	now := m.nowFn()
	surcharge := utils.OverdueDays(acct.Records[idx], now) * pol.ReturnSurchargePerDay()

	updated := append([]domain.LoanRecord(nil), acct.Records...)
	updated[idx].Returned = true
	if err := m.ledgerRepo.SaveRecords(ctx, patron.ID, updated); err != nil {
		return 0, fmt.Errorf("failed to persist ledger for patron %d: %w", patron.ID, err)
	}

	acct.Records = updated
	acct.CarriedFines += surcharge
	recompute(acct, pol.FinePerDay(), now)
	if surcharge > 0 {
		logger.Info("Overdue return surcharge", "patron_id", patron.ID, "book_id", bookID, "surcharge", surcharge)
	}
	return surcharge, nil
}
