package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

type (
	registerRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginResponse struct {
		Token string  `json:"token"`
		User  userDTO `json:"user"`
	}

	userDTO struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	entryRequest struct {
		Description string          `json:"description"`
		Month       int             `json:"month"`
		Year        int             `json:"year"`
		Value       decimal.Decimal `json:"value"`
		Type        string          `json:"type"`
		Status      string          `json:"status,omitempty"`
	}

	statusRequest struct {
		Status string `json:"status"`
	}

	entryDTO struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Month       int             `json:"month"`
		Year        int             `json:"year"`
		Value       decimal.Decimal `json:"value"`
		Type        string          `json:"type"`
		Status      string          `json:"status"`
		UserID      int64           `json:"user_id"`
		CreatedAt   string          `json:"created_at"`
	}

	balanceResponse struct {
		UserID  int64           `json:"user_id"`
		Status  string          `json:"status"`
		Balance decimal.Decimal `json:"balance"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

func toUserDTO(u core.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toEntryDTO(e core.Entry) entryDTO {
	return entryDTO{
		ID:          e.ID,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Value:       e.Value,
		Type:        string(e.Type),
		Status:      string(e.Status),
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func (r entryRequest) toEntry(userID int64) core.Entry {
	return core.Entry{
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		Value:       r.Value,
		Type:        core.EntryType(r.Type),
		Status:      core.EntryStatus(r.Status),
		UserID:      userID,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps the service error taxonomy onto HTTP statuses.
// Validation and business rule failures are the caller's fault; auth failures
// get 401; anything else is a server-side problem.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidationError(err), errors.Is(err, core.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case core.IsAuthError(err):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
