// Package api exposes the HTTP handlers for the guitaa API.
package api

import (
	"net/http"
	"strings"

	"github.com/WeltonSantosFr/guitaa-api/internal/auth"
	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	users     *domain.UserService
	exercises *domain.ExerciseService
	history   *domain.HistoryService
	authCfg   auth.Config
}

// NewHandler builds a Handler.
func NewHandler(users *domain.UserService, exercises *domain.ExerciseService, history *domain.HistoryService, authCfg auth.Config) *Handler {
	return &Handler{
		users:     users,
		exercises: exercises,
		history:   history,
		authCfg:   authCfg,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/login", h.login)
	mux.HandleFunc("/users", h.userCollection)
	mux.HandleFunc("/users/", h.userByID)
	mux.HandleFunc("/exercises", h.exerciseCollection)
	mux.HandleFunc("/exercises/", h.exerciseByID)
	mux.HandleFunc("/history", h.historyCollection)
	mux.HandleFunc("/history/", h.historyByID)
	mux.HandleFunc("/healthz", healthz)
}

// PublicRoute reports whether the request needs no bearer token before the
// handler runs. Owner-guarded routes are listed here too: they verify the
// token themselves so failures surface as 403, per the owner-guard contract,
// instead of the middleware's 401.
func PublicRoute(r *http.Request) bool {
	switch r.URL.Path {
	case "/auth/login", "/users", "/healthz", "/metrics":
		return true
	case "/exercises":
		return r.Method != http.MethodPost
	}
	return strings.HasPrefix(r.URL.Path, "/users/") || strings.HasPrefix(r.URL.Path, "/exercises/")
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
