package domain

import "time"

// LoanRecord is one row of a patron's borrowing ledger. Records are
// append-only: a return flips Returned, nothing is ever deleted.
type LoanRecord struct {
	BookID     int32     `json:"book_id"`
	BorrowedAt time.Time `json:"borrowed_at"`
	DueAt      time.Time `json:"due_at"`
	Returned   bool      `json:"returned"`
}

// Account is a patron's in-memory borrowing state: the full ledger in
// insertion order plus the cached fine balance. The balance is derived
// (recomputed by policy evaluation) and never goes negative.
type Account struct {
	PatronID    int32        `json:"patron_id"`
	Records     []LoanRecord `json:"records"`
	FineBalance int32        `json:"fine_balance"`
	// CarriedFines is the portion of the balance that does not regenerate
	// on recomputation: return-time surcharges minus payments, clamped at
	// zero. FineBalance = CarriedFines + accrual over open overdue records.
	CarriedFines int32 `json:"-"`
}

// CurrentBooks returns the book ids of all unreturned records, ledger order.
func (a *Account) CurrentBooks() []int32 {
	var ids []int32
	for _, r := range a.Records {
		if !r.Returned {
			ids = append(ids, r.BookID)
		}
	}
	return ids
}

func (a *Account) CurrentBorrowedCount() int {
	return len(a.CurrentBooks())
}

// OpenRecord returns the index of the most recent unreturned record for
// bookID, or -1 if the patron has no open loan of that book.
func (a *Account) OpenRecord(bookID int32) int {
	for i := len(a.Records) - 1; i >= 0; i-- {
		if a.Records[i].BookID == bookID && !a.Records[i].Returned {
			return i
		}
	}
	return -1
}
