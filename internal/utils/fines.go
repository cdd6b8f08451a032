package utils

import (
	"time"

	"library-backend/internal/domain"
)

const secondsPerDay = 86400

// DaysBetween returns the whole number of days between two instants,
// truncated toward zero. The distance is unsigned: callers that only
// want elapsed-past-due days must check now > due themselves.
func DaysBetween(t1, t2 time.Time) int32 {
	diff := t1.Unix() - t2.Unix()
	if diff < 0 {
		diff = -diff
	}
	return int32(diff / secondsPerDay)
}

// OverdueDays returns how many whole days past due a record is at now,
// zero if it is not yet due.
func OverdueDays(r domain.LoanRecord, now time.Time) int32 {
	if !now.After(r.DueAt) {
		return 0
	}
	return DaysBetween(now, r.DueAt)
}

// AccruedFines sums finePerDay over the overdue days of every open
// record. This is the full recomputation that overwrites a cached fine
// balance; it does not accumulate across calls.
func AccruedFines(records []domain.LoanRecord, finePerDay int32, now time.Time) int32 {
	var fines int32
	for _, r := range records {
		if !r.Returned && now.After(r.DueAt) {
			fines += DaysBetween(now, r.DueAt) * finePerDay
		}
	}
	return fines
}
