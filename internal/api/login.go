package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/WeltonSantosFr/guitaa-api/internal/auth"
	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
	"github.com/WeltonSantosFr/guitaa-api/internal/observability"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate ensures request correctness.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			observability.RecordLogin("failure")
		}
		writeDomainError(w, err)
		return
	}

	token, err := auth.Sign(user.ID, user.Email, h.authCfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	observability.RecordLogin("success")
	writeJSON(w, http.StatusCreated, LoginResponse{
		AccessToken: token,
		User:        toUserView(*user),
	})
}
