package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/WeltonSantosFr/guitaa-api/internal/auth"
	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
	"github.com/WeltonSantosFr/guitaa-api/internal/persistence/memory"
)

var testAuthCfg = auth.Config{Secret: "test-secret", Issuer: "guitaa.test", TTL: time.Hour}

// newTestStack wires the full handler stack over in-memory repositories,
// mirroring the composition in cmd/api.
func newTestStack(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()

	store := memory.NewStore()
	users := domain.NewUserService(store.Users(), bcrypt.MinCost)
	exercises := domain.NewExerciseService(store.Exercises(), store.History())
	history := domain.NewHistoryService(store.History(), store.Exercises())

	handler := NewHandler(users, exercises, history, testAuthCfg)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	middleware := auth.NewMiddleware(testAuthCfg, PublicRoute)
	return store, middleware.Wrap(mux)
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

// registerAndLogin creates an account and returns its id and a valid token.
func registerAndLogin(t *testing.T, handler http.Handler, username, email, password string) (string, string) {
	t.Helper()

	rr := doRequest(t, handler, http.MethodPost, "/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, handler, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("login: expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp LoginResponse
	decodeBody(t, rr, &resp)
	return resp.User.ID, resp.AccessToken
}

func createExercise(t *testing.T, handler http.Handler, token string, body interface{}) ExerciseView {
	t.Helper()

	rr := doRequest(t, handler, http.MethodPost, "/exercises", token, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create exercise: expected 201 got %d: %s", rr.Code, rr.Body.String())
	}
	var view ExerciseView
	decodeBody(t, rr, &view)
	return view
}
