package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// CreateExerciseRequest is the payload for POST /exercises. The owner comes
// from the verified token, never from the body.
type CreateExerciseRequest struct {
	Name             string `json:"name"`
	DurationMinutes  *int   `json:"durationMinutes"`
	CurrentBpmRecord *int   `json:"currentBpmRecord"`
}

// Validate ensures request correctness.
func (r CreateExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 1 {
		return errors.New("durationMinutes must be >= 1")
	}
	if r.CurrentBpmRecord != nil && *r.CurrentBpmRecord < 0 {
		return errors.New("currentBpmRecord must be >= 0")
	}
	return nil
}

// UpdateExerciseRequest is the payload for PATCH /exercises/{id}. Absent
// fields keep their stored values; there is no userId field to update.
type UpdateExerciseRequest struct {
	Name             *string `json:"name"`
	DurationMinutes  *int    `json:"durationMinutes"`
	CurrentBpmRecord *int    `json:"currentBpmRecord"`
}

// Validate ensures per-field correctness for the fields that are present.
func (r UpdateExerciseRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 1 {
		return errors.New("durationMinutes must be >= 1")
	}
	if r.CurrentBpmRecord != nil && *r.CurrentBpmRecord < 0 {
		return errors.New("currentBpmRecord must be >= 0")
	}
	return nil
}

func (h *Handler) exerciseCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createExercise(w, r)
	case http.MethodGet:
		h.listExercises(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) exerciseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/exercises/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing exercise id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getExercise(w, r, id)
	case http.MethodPatch:
		h.updateExercise(w, r, id)
	case http.MethodDelete:
		h.deleteExercise(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	exercise, err := h.exercises.Create(r.Context(), domain.CreateExerciseInput{
		Name:             req.Name,
		DurationMinutes:  req.DurationMinutes,
		CurrentBpmRecord: req.CurrentBpmRecord,
	}, claims.Subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExerciseView(domain.ExerciseDetail{Exercise: *exercise}))
}

func (h *Handler) listExercises(w http.ResponseWriter, r *http.Request) {
	var (
		details []domain.ExerciseDetail
		err     error
	)
	if userID := r.URL.Query().Get("userId"); userID != "" {
		details, err = h.exercises.ListByUser(r.Context(), userID)
	} else {
		details, err = h.exercises.List(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]ExerciseView, 0, len(details))
	for _, detail := range details {
		views = append(views, toExerciseView(detail))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getExercise(w http.ResponseWriter, r *http.Request, id string) {
	detail, err := h.exercises.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExerciseView(*detail))
}

func (h *Handler) updateExercise(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := h.guardExercise(w, r, id); !ok {
		return
	}

	var req UpdateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	exercise, err := h.exercises.Update(r.Context(), id, domain.UpdateExerciseInput{
		Name:             req.Name,
		DurationMinutes:  req.DurationMinutes,
		CurrentBpmRecord: req.CurrentBpmRecord,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExerciseView(domain.ExerciseDetail{Exercise: *exercise}))
}

func (h *Handler) deleteExercise(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := h.guardExercise(w, r, id); !ok {
		return
	}

	if err := h.exercises.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
