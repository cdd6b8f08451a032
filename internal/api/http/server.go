// Package http exposes every circulation operation over a JSON API.
// Authentication is a bare patron-id login that hands out a session
// token; it is a lookup, not a security boundary.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"library-backend/internal/domain"
	"library-backend/internal/service"
	"library-backend/internal/session"

	"github.com/gorilla/mux"
)

const sessionHeader = "X-Session-Token"

type Server struct {
	catalog     service.CatalogService
	directory   service.DirectoryService
	accounts    service.AccountService
	circulation service.CirculationService
	sessions    *session.Manager
}

func NewServer(
	catalog service.CatalogService,
	directory service.DirectoryService,
	accounts service.AccountService,
	circulation service.CirculationService,
	sessions *session.Manager,
) *Server {
	return &Server{
		catalog:     catalog,
		directory:   directory,
		accounts:    accounts,
		circulation: circulation,
		sessions:    sessions,
	}
}

// Router builds the mux router with all API routes registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	api.HandleFunc("/books", s.handleListBooks).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", s.handleGetBook).Methods(http.MethodGet)
	api.HandleFunc("/books", s.withSession(s.handleAddBook)).Methods(http.MethodPost)
	api.HandleFunc("/books/{id:[0-9]+}", s.withSession(s.handleRemoveBook)).Methods(http.MethodDelete)

	api.HandleFunc("/patrons", s.withSession(s.handleAddPatron)).Methods(http.MethodPost)
	api.HandleFunc("/patrons/{id:[0-9]+}", s.withSession(s.handleRemovePatron)).Methods(http.MethodDelete)

	api.HandleFunc("/account", s.withSession(s.handleGetAccount)).Methods(http.MethodGet)
	api.HandleFunc("/loans", s.withSession(s.handleBorrow)).Methods(http.MethodPost)
	api.HandleFunc("/returns", s.withSession(s.handleReturn)).Methods(http.MethodPost)
	api.HandleFunc("/fines/payments", s.withSession(s.handlePayFine)).Methods(http.MethodPost)

	return r
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, patron *domain.Patron)

// withSession resolves the session token header before invoking the
// handler with the logged-in patron.
func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(sessionHeader)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}
		sess, err := s.sessions.Get(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}
		next(w, r, &sess.Patron)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain error kinds to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsPolicyDenied(err):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrBookUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
