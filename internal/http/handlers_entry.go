package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Andreprogdev/minhasfinancas-api/internal/core"
)

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.entries.Save(r.Context(), req.toEntry(authUserID(r.Context())))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryDTO(saved))
}

// handleListEntries filters the caller's entries by the query parameters.
// Absent parameters are wildcards.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.EntryFilter{
		UserID:      authUserID(r.Context()),
		Description: q.Get("description"),
		Type:        core.EntryType(q.Get("type")),
		Status:      core.EntryStatus(q.Get("status")),
	}
	if raw := q.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		filter.Month = month
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		filter.Year = year
	}

	entries, err := s.entries.Search(r.Context(), filter)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to search entries", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	dtos := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(*e))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e := req.toEntry(existing.UserID)
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	if e.Status == "" {
		e.Status = existing.Status
	}

	updated, err := s.entries.Update(r.Context(), e)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryDTO(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}

	if err := s.entries.Delete(r.Context(), *existing); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to delete entry", "entry_id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := core.EntryStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := s.entries.ChangeStatus(r.Context(), *existing, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryDTO(updated))
}

// ownedEntry loads the {id} entry and enforces ownership. A miss or a foreign
// entry both read as 404 so entry IDs don't leak across users.
func (s *Server) ownedEntry(w http.ResponseWriter, r *http.Request) (*core.Entry, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return nil, false
	}

	e, err := s.entries.FindByID(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to load entry", "entry_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if e == nil || e.UserID != authUserID(r.Context()) {
		writeError(w, http.StatusNotFound, "entry not found")
		return nil, false
	}
	return e, true
}
