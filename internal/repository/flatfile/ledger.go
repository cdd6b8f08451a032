package flatfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
)

// ledgerRepository stores one headerless file per patron, named
// user_<id>.csv, four fields per row:
// bookId,borrowedAtEpochSeconds,dueAtEpochSeconds,returnedFlag(0|1).
type ledgerRepository struct {
	dir string
}

func NewLedgerRepository(dir string) repository.LedgerRepository {
	return &ledgerRepository{dir: dir}
}

func (r *ledgerRepository) recordPath(patronID int32) string {
	return filepath.Join(r.dir, fmt.Sprintf("user_%d.csv", patronID))
}

func (r *ledgerRepository) LoadRecords(ctx context.Context, patronID int32) ([]domain.LoanRecord, error) {
	path := r.recordPath(patronID)
	logger.StoreCall("LoadRecords", "patron_id", patronID)
	lines, err := readLines(path)
	logger.StoreResult("LoadRecords", err, "patron_id", patronID)
	if err != nil {
		return nil, err
	}
	var records []domain.LoanRecord
	for i, line := range lines {
		rec, err := parseLoanRecord(line)
		if err != nil {
			logger.Warn("Skipping malformed loan record", "file", path, "line", i+1, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *ledgerRepository) SaveRecords(ctx context.Context, patronID int32, records []domain.LoanRecord) error {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, formatLoanRecord(rec))
	}
	logger.StoreCall("SaveRecords", "patron_id", patronID, "records", len(records))
	err := writeLines(r.recordPath(patronID), lines)
	logger.StoreResult("SaveRecords", err, "patron_id", patronID)
	return err
}

func formatLoanRecord(rec domain.LoanRecord) string {
	returned := 0
	if rec.Returned {
		returned = 1
	}
	return fmt.Sprintf("%d,%d,%d,%d", rec.BookID, rec.BorrowedAt.Unix(), rec.DueAt.Unix(), returned)
}

func parseLoanRecord(line string) (domain.LoanRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return domain.LoanRecord{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	bookID, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return domain.LoanRecord{}, fmt.Errorf("invalid book id %q: %w", fields[0], err)
	}
	borrowed, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return domain.LoanRecord{}, fmt.Errorf("invalid borrow timestamp %q: %w", fields[1], err)
	}
	due, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return domain.LoanRecord{}, fmt.Errorf("invalid due timestamp %q: %w", fields[2], err)
	}
	flag, err := strconv.ParseInt(fields[3], 10, 8)
	if err != nil || (flag != 0 && flag != 1) {
		return domain.LoanRecord{}, fmt.Errorf("invalid returned flag %q", fields[3])
	}
	return domain.LoanRecord{
		BookID:     int32(bookID),
		BorrowedAt: time.Unix(borrowed, 0).UTC(),
		DueAt:      time.Unix(due, 0).UTC(),
		Returned:   flag == 1,
	}, nil
}
