package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"library-backend/internal/domain"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	return int32(id), err
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatronID int32 `json:"patron_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patron, err := s.directory.Authenticate(r.Context(), req.PatronID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	sess := s.sessions.Create(*patron)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":  sess.Token,
		"patron": patron,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(r.Header.Get(sessionHeader))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalog.ListBooks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books})
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	book, err := s.catalog.GetBook(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.catalog.AddBook(r.Context(), patron, book); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int32{"id": book.ID})
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	if err := s.catalog.RemoveBook(r.Context(), patron, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPatron(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	var newPatron domain.Patron
	if err := json.NewDecoder(r.Body).Decode(&newPatron); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.directory.AddPatron(r.Context(), patron, newPatron); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int32{"id": newPatron.ID})
}

func (s *Server) handleRemovePatron(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid patron id")
		return
	}
	if err := s.directory.RemovePatron(r.Context(), patron, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	acct, err := s.accounts.GetAccount(r.Context(), patron)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"patron_id":      acct.PatronID,
		"fine_balance":   acct.FineBalance,
		"borrowed_books": acct.CurrentBooks(),
		"records":        acct.Records,
	})
}

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	var req struct {
		BookID int32 `json:"book_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := s.circulation.Borrow(r.Context(), patron, req.BookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	var req struct {
		BookID int32 `json:"book_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.circulation.Return(r.Context(), patron, req.BookID); err != nil {
		writeServiceError(w, err)
		return
	}
	acct, err := s.accounts.GetAccount(r.Context(), patron)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"fine_balance": acct.FineBalance})
}

func (s *Server) handlePayFine(w http.ResponseWriter, r *http.Request, patron *domain.Patron) {
	var req struct {
		Amount int32 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	remaining, err := s.accounts.PayFine(r.Context(), patron, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"fine_balance": remaining})
}
