package domain

type PatronRole string

const (
	RoleStudent   PatronRole = "Student"
	RoleFaculty   PatronRole = "Faculty"
	RoleLibrarian PatronRole = "Librarian"
)

// ParseRole maps a stored role string to a PatronRole. The role set is
// closed; anything else is rejected.
func ParseRole(s string) (PatronRole, bool) {
	switch PatronRole(s) {
	case RoleStudent, RoleFaculty, RoleLibrarian:
		return PatronRole(s), true
	}
	return "", false
}

type Patron struct {
	ID   int32      `json:"id"`
	Name string     `json:"name"`
	Role PatronRole `json:"role"`
}
