package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	saved, err := s.users.Register(r.Context(), core.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserDTO(saved))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserDTO(u)})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if id != authUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "cannot read another user's profile")
		return
	}

	u, err := s.users.FindByID(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to load user", "user_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*u))
}

// handleBalance returns the authenticated user's balance for a status
// (REALIZED unless overridden with ?status=).
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if id != authUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "cannot read another user's balance")
		return
	}

	status := core.StatusRealized
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = core.EntryStatus(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
	}

	balance, err := s.entries.Balance(r.Context(), id, status)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to compute balance", "user_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{UserID: id, Status: string(status), Balance: balance})
}
