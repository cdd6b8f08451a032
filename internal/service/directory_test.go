package service

import (
	"context"
	"testing"

	"library-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPatronRepo struct {
	patrons []domain.Patron
}

func (r *memPatronRepo) LoadAll(ctx context.Context) ([]domain.Patron, error) {
	return append([]domain.Patron(nil), r.patrons...), nil
}
func (r *memPatronRepo) SaveAll(ctx context.Context, patrons []domain.Patron) error {
	r.patrons = append([]domain.Patron(nil), patrons...)
	return nil
}

func TestDirectoryService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewDirectoryService(&memPatronRepo{patrons: []domain.Patron{
		{ID: 1001, Name: "John Doe", Role: domain.RoleStudent},
	}})

	t.Run("Known Patron", func(t *testing.T) {
		p, err := svc.Authenticate(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", p.Name)
		assert.Equal(t, domain.RoleStudent, p.Role)
	})

	t.Run("Unknown Patron", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDirectoryService_AddPatron(t *testing.T) {
	ctx := context.Background()

	t.Run("Added Patron Authenticates", func(t *testing.T) {
		svc := NewDirectoryService(&memPatronRepo{})
		p := domain.Patron{ID: 2004, Name: "Dr. New", Role: domain.RoleFaculty}
		require.NoError(t, svc.AddPatron(ctx, librarian, p))

		got, err := svc.Authenticate(ctx, 2004)
		require.NoError(t, err)
		assert.Equal(t, p, *got)
	})

	t.Run("Duplicate ID Rejected", func(t *testing.T) {
		svc := NewDirectoryService(&memPatronRepo{patrons: []domain.Patron{
			{ID: 1001, Name: "John Doe", Role: domain.RoleStudent},
		}})
		err := svc.AddPatron(ctx, librarian, domain.Patron{ID: 1001, Name: "Imposter", Role: domain.RoleStudent})
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		svc := NewDirectoryService(&memPatronRepo{})
		err := svc.AddPatron(ctx, librarian, domain.Patron{ID: 5000, Name: "X", Role: "Visitor"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Non Librarian Denied", func(t *testing.T) {
		repo := new(MockPatronRepo)
		svc := NewDirectoryService(repo)
		err := svc.AddPatron(ctx, student, domain.Patron{ID: 5000, Name: "X", Role: domain.RoleStudent})
		assert.True(t, domain.IsPolicyDenied(err))
		repo.AssertNotCalled(t, "SaveAll")
	})
}

func TestDirectoryService_RemovePatron(t *testing.T) {
	ctx := context.Background()
	svc := NewDirectoryService(&memPatronRepo{patrons: []domain.Patron{
		{ID: 1001, Name: "John Doe", Role: domain.RoleStudent},
	}})

	require.NoError(t, svc.RemovePatron(ctx, librarian, 1001))
	_, err := svc.Authenticate(ctx, 1001)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.RemovePatron(ctx, librarian, 1001), domain.ErrNotFound)
}
