package policy

import (
	"fmt"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/utils"
)

// Policy is the per-role circulation rule set. CanBorrow inspects the
// account as it stands (fines already recomputed by the caller) and
// returns a *domain.PolicyError on denial.
type Policy interface {
	Role() domain.PatronRole
	LoanTermDays() int32
	// FinePerDay is the rate used when recomputing the fine balance.
	FinePerDay() int32
	// ReturnSurchargePerDay is the rate added at return time for each
	// day past due. It is charged regardless of FinePerDay, matching
	// long-standing circulation behavior.
	ReturnSurchargePerDay() int32
	CanBorrow(acct *domain.Account, now time.Time) error
}

var policies = map[domain.PatronRole]Policy{
	domain.RoleStudent:   studentPolicy{},
	domain.RoleFaculty:   facultyPolicy{},
	domain.RoleLibrarian: librarianPolicy{},
}

// ForRole resolves a role to its policy.
func ForRole(role domain.PatronRole) (Policy, error) {
	p, ok := policies[role]
	if !ok {
		return nil, fmt.Errorf("no circulation policy for role %q: %w", role, domain.ErrInvalidInput)
	}
	return p, nil
}

type studentPolicy struct{}

func (studentPolicy) Role() domain.PatronRole { return domain.RoleStudent }
func (studentPolicy) LoanTermDays() int32 { return 15 }
func (studentPolicy) FinePerDay() int32 { return 10 }
func (studentPolicy) ReturnSurchargePerDay() int32 { return 10 }

func (studentPolicy) CanBorrow(acct *domain.Account, now time.Time) error {
	if acct.FineBalance > 0 {
		return &domain.PolicyError{Reason: fmt.Sprintf("outstanding fines of %d, pay fines first", acct.FineBalance)}
	}
	if acct.CurrentBorrowedCount() >= 3 {
		return &domain.PolicyError{Reason: "maximum 3 books allowed"}
	}
	return nil
}

type facultyPolicy struct{}

func (facultyPolicy) Role() domain.PatronRole { return domain.RoleFaculty }
func (facultyPolicy) LoanTermDays() int32 { return 30 }
func (facultyPolicy) FinePerDay() int32 { return 0 }
func (facultyPolicy) ReturnSurchargePerDay() int32 { return 10 }

func (facultyPolicy) CanBorrow(acct *domain.Account, now time.Time) error {
	if acct.CurrentBorrowedCount() >= 5 {
		return &domain.PolicyError{Reason: "maximum 5 books allowed"}
	}
	// Exactly 30 days overdue is still allowed; the gate is strictly
	// more than 30.
	for _, r := range acct.Records {
		if !r.Returned && utils.OverdueDays(r, now) > 30 {
			return &domain.PolicyError{Reason: fmt.Sprintf("book %d overdue more than 30 days, return it first", r.BookID)}
		}
	}
	return nil
}

type librarianPolicy struct{}

func (librarianPolicy) Role() domain.PatronRole { return domain.RoleLibrarian }
func (librarianPolicy) LoanTermDays() int32 { return 0 }
func (librarianPolicy) FinePerDay() int32 { return 0 }
func (librarianPolicy) ReturnSurchargePerDay() int32 { return 0 }

func (librarianPolicy) CanBorrow(*domain.Account, time.Time) error {
	return &domain.PolicyError{Reason: "librarians do not borrow"}
}

// CanAdminister reports whether the role carries catalog and patron
// administration capability.
func CanAdminister(role domain.PatronRole) bool {
	return role == domain.RoleLibrarian
}
