package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/WeltonSantosFr/guitaa-api/internal/auth"
	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// ownerResolver returns the authoritative owner id of the guarded resource.
// Ownership is always resolved from stored state, never from the request
// body, so a caller cannot escalate by embedding someone else's id.
type ownerResolver func(ctx context.Context) (string, error)

// verifyOwner runs the shared authorization chain: verify the bearer token,
// resolve the stored owner, compare it to the token subject. Callers shape
// the failure message per guard.
func (h *Handler) verifyOwner(r *http.Request, resolve ownerResolver) (*auth.Claims, error) {
	claims, err := auth.ParseRequestHeader(r.Header.Get("Authorization"), h.authCfg)
	if err != nil {
		return nil, err
	}
	owner, err := resolve(r.Context())
	if err != nil {
		return nil, err
	}
	if owner != claims.Subject {
		return nil, domain.ErrNotOwner
	}
	return claims, nil
}

// guardUser gates self-profile mutations. The owner id is the path id itself.
func (h *Handler) guardUser(w http.ResponseWriter, r *http.Request, id string) (*auth.Claims, bool) {
	claims, err := h.verifyOwner(r, func(context.Context) (string, error) {
		return id, nil
	})
	if err == nil {
		return claims, true
	}
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		writeError(w, http.StatusForbidden, "forbidden", "no token provided")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "forbidden", "you can only access your own resources")
	default:
		writeError(w, http.StatusForbidden, "forbidden", "invalid token")
	}
	return nil, false
}

// guardExercise gates exercise mutations against the stored owner row.
// Token-verification failures and a missing exercise deliberately collapse
// into one message so the response does not reveal which check failed.
func (h *Handler) guardExercise(w http.ResponseWriter, r *http.Request, id string) (*auth.Claims, bool) {
	claims, err := h.verifyOwner(r, func(ctx context.Context) (string, error) {
		return h.exercises.Owner(ctx, id)
	})
	if err == nil {
		return claims, true
	}
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		writeError(w, http.StatusForbidden, "forbidden", "no token provided")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "forbidden", "you can only access your own exercises")
	default:
		writeError(w, http.StatusForbidden, "forbidden", "invalid token or exercise not found")
	}
	return nil, false
}

// requireClaims pulls the claims placed on the context by the auth
// middleware. Routes reaching here without claims fail as unauthenticated.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	return claims, true
}
