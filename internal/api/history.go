package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// CreateHistoryRequest is the payload for POST /history. Both fields are
// required; the recording date is server-assigned.
type CreateHistoryRequest struct {
	Bpm        *int   `json:"bpm"`
	ExerciseID string `json:"exerciseId"`
}

// Validate ensures request correctness.
func (r CreateHistoryRequest) Validate() error {
	if r.Bpm == nil {
		return errors.New("bpm is required")
	}
	if *r.Bpm < 0 {
		return errors.New("bpm must be >= 0")
	}
	if strings.TrimSpace(r.ExerciseID) == "" {
		return errors.New("exerciseId is required")
	}
	return nil
}

func (h *Handler) historyCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createHistory(w, r)
	case http.MethodGet:
		h.listHistory(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) historyByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/history/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing history id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getHistory(w, r, id)
	case http.MethodDelete:
		h.deleteHistory(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) createHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req CreateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	entry, err := h.history.Record(r.Context(), *req.Bpm, req.ExerciseID, claims.Subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHistoryView(*entry))
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var (
		raw []domain.History
		err error
	)
	if exerciseID := r.URL.Query().Get("exerciseId"); exerciseID != "" {
		raw, err = h.history.ListByExercise(r.Context(), exerciseID, claims.Subject)
	} else {
		raw, err = h.history.ListForUser(r.Context(), claims.Subject)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entries := make([]HistoryView, 0, len(raw))
	for _, entry := range raw {
		entries = append(entries, toHistoryView(entry))
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	entry, err := h.history.Get(r.Context(), id, claims.Subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryView(*entry))
}

func (h *Handler) deleteHistory(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.history.Remove(r.Context(), id, claims.Subject); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
