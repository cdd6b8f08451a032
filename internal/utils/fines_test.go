package utils

import (
	"testing"
	"time"

	"library-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Whole Days", func(t *testing.T) {
		assert.Equal(t, int32(5), DaysBetween(base.Add(5*24*time.Hour), base))
	})

	t.Run("Truncates Partial Days", func(t *testing.T) {
		assert.Equal(t, int32(1), DaysBetween(base.Add(47*time.Hour), base))
	})

	t.Run("Unsigned Distance", func(t *testing.T) {
		// Order of arguments must not matter.
		assert.Equal(t, int32(3), DaysBetween(base, base.Add(3*24*time.Hour)))
	})

	t.Run("Same Instant", func(t *testing.T) {
		assert.Equal(t, int32(0), DaysBetween(base, base))
	})
}

func TestOverdueDays(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	rec := domain.LoanRecord{BookID: 101, DueAt: due}

	cases := []struct {
		name string
		now  time.Time
		want int32
	}{
		{"Not Yet Due", due.Add(-24 * time.Hour), 0},
		{"Exactly Due", due, 0},
		{"One Day Late", due.Add(24 * time.Hour), 1},
		{"Thirty Days Late", due.Add(30 * 24 * time.Hour), 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OverdueDays(rec, tc.now))
		})
	}
}

func TestAccruedFines(t *testing.T) {
	now := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	records := []domain.LoanRecord{
		{BookID: 101, DueAt: now.Add(-5 * 24 * time.Hour)},                 // 5 days overdue
		{BookID: 102, DueAt: now.Add(-24 * time.Hour), Returned: true},     // returned, ignored
		{BookID: 103, DueAt: now.Add(10 * 24 * time.Hour)},                 // not due
		{BookID: 104, DueAt: now.Add(-30*24*time.Hour - 12*time.Hour)},     // 30 days overdue
	}

	t.Run("Student Rate", func(t *testing.T) {
		assert.Equal(t, int32((5+30)*10), AccruedFines(records, 10, now))
	})

	t.Run("Zero Rate", func(t *testing.T) {
		assert.Equal(t, int32(0), AccruedFines(records, 0, now))
	})

	t.Run("No Records", func(t *testing.T) {
		assert.Equal(t, int32(0), AccruedFines(nil, 10, now))
	})
}
