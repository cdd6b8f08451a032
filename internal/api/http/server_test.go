package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-backend/internal/domain"
	"library-backend/internal/repository/flatfile"
	"library-backend/internal/service"
	"library-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full stack over a temp-dir flat-file store
// seeded with the default data.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := flatfile.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.EnsureSeedData(context.Background()))

	catalog := service.NewCatalogService(store.BookRepository)
	directory := service.NewDirectoryService(store.PatronRepository)
	accounts := service.NewAccountManager(store.LedgerRepository)
	circulation := service.NewCirculationService(catalog, accounts)

	srv := NewServer(catalog, directory, accounts, circulation, session.NewManager())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(sessionHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func login(t *testing.T, ts *httptest.Server, patronID int32) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]int32{"patron_id": patronID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Known Patron", func(t *testing.T) {
		token := login(t, ts, 1001)
		assert.NotEmpty(t, token)
	})

	t.Run("Unknown Patron", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]int32{"patron_id": 9999})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListBooks(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/books", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	books, ok := body["books"].([]any)
	require.True(t, ok)
	assert.Len(t, books, 10)
}

func TestBorrowAndReturn(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts, 1001)

	t.Run("Requires Session", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/loans", "", map[string]int32{"book_id": 101})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Borrow", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/loans", token, map[string]int32{"book_id": 101})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, float64(101), body["book_id"])
	})

	t.Run("Book Now Unavailable", func(t *testing.T) {
		other := login(t, ts, 1002)
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/loans", other, map[string]int32{"book_id": 101})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Account Shows Loan", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/account", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		borrowed, ok := body["borrowed_books"].([]any)
		require.True(t, ok)
		assert.Len(t, borrowed, 1)
	})

	t.Run("Return", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/returns", token, map[string]int32{"book_id": 101})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(0), body["fine_balance"])
	})

	t.Run("Return Without Open Loan", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/returns", token, map[string]int32{"book_id": 101})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestLibrarianAdministration(t *testing.T) {
	ts := newTestServer(t)
	librarian := login(t, ts, 3001)
	student := login(t, ts, 1001)

	book := domain.Book{ID: 200, Title: "New Book", Author: "Author", ISBN: "isbn", Publisher: "pub", Year: 2024}

	t.Run("Student Cannot Add Books", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/books", student, book)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Librarian Adds Book", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/books", librarian, book)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Duplicate Book Conflict", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/books", librarian, book)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Librarian Removes Book", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/books/%d", ts.URL, 200), librarian, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/books/%d", ts.URL, 200), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Librarian Manages Patrons", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/patrons", librarian, domain.Patron{ID: 1010, Name: "New Student", Role: domain.RoleStudent})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/patrons/1010", librarian, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestPayFineValidation(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts, 1001)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/fines/payments", token, map[string]int32{"amount": -5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Paying with no outstanding balance clamps at zero.
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/fines/payments", token, map[string]int32{"amount": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["fine_balance"])
}
