package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

func TestHistoryRoutesRequireToken(t *testing.T) {
	_, handler := newTestStack(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/history"},
		{http.MethodGet, "/history"},
		{http.MethodGet, "/history/some-id"},
		{http.MethodDelete, "/history/some-id"},
	} {
		rr := doRequest(t, handler, route.method, route.path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", route.method, route.path, rr.Code)
		}
	}
}

func TestRecordHistoryMissingExercise(t *testing.T) {
	store, handler := newTestStack(t)
	_, token := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")

	rr := doRequest(t, handler, http.MethodPost, "/history", token, map[string]interface{}{
		"bpm": 140, "exerciseId": "ghost",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rr.Code, rr.Body.String())
	}

	entries, err := store.History().ListByExercise(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("no row should have been inserted, got %d", len(entries))
	}
}

func TestRecordHistoryForeignExercise(t *testing.T) {
	store, handler := newTestStack(t)
	_, aliceToken := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")
	_, bobToken := registerAndLogin(t, handler, "bob", "bob@x.com", "pw12345")

	view := createExercise(t, handler, aliceToken, map[string]interface{}{"name": "Run"})

	rr := doRequest(t, handler, http.MethodPost, "/history", bobToken, map[string]interface{}{
		"bpm": 140, "exerciseId": view.ID,
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", rr.Code, rr.Body.String())
	}

	entries, err := store.History().ListByExercise(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("no row should have been inserted, got %d", len(entries))
	}
}

func TestRecordHistoryValidation(t *testing.T) {
	_, handler := newTestStack(t)
	_, token := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")

	cases := map[string]map[string]interface{}{
		"missing bpm":        {"exerciseId": "x"},
		"missing exerciseId": {"bpm": 140},
		"negative bpm":       {"bpm": -5, "exerciseId": "x"},
	}
	for name, body := range cases {
		rr := doRequest(t, handler, http.MethodPost, "/history", token, body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d: %s", name, rr.Code, rr.Body.String())
		}
	}
}

func TestRecordHistoryRejectsNegativeBpm(t *testing.T) {
	store, handler := newTestStack(t)
	_, token := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")
	view := createExercise(t, handler, token, map[string]interface{}{"name": "Run"})

	rr := doRequest(t, handler, http.MethodPost, "/history", token, map[string]interface{}{
		"bpm": -5, "exerciseId": view.ID,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rr.Code, rr.Body.String())
	}

	entries, err := store.History().ListByExercise(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("no row should have been inserted, got %d", len(entries))
	}
}

func TestListHistoryNewestFirst(t *testing.T) {
	store, handler := newTestStack(t)
	_, token := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")
	view := createExercise(t, handler, token, map[string]interface{}{"name": "Run"})

	// Seed directly so the timestamps are distinct and known.
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, entryID := range []string{"h-1", "h-2", "h-3"} {
		err := store.History().Create(context.Background(), domain.History{
			ID:         entryID,
			Bpm:        100 + i,
			Date:       base.Add(time.Duration(i) * time.Hour),
			ExerciseID: view.ID,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rr := doRequest(t, handler, http.MethodGet, "/history?exerciseId="+view.ID, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var entries []HistoryView
	decodeBody(t, rr, &entries)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries got %d", len(entries))
	}
	for i, want := range []string{"h-3", "h-2", "h-1"} {
		if entries[i].ID != want {
			t.Fatalf("position %d: got %s want %s", i, entries[i].ID, want)
		}
	}

	rr = doRequest(t, handler, http.MethodGet, "/history", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("owner list: expected 200 got %d", rr.Code)
	}
	decodeBody(t, rr, &entries)
	if len(entries) != 3 || entries[0].ID != "h-3" {
		t.Fatalf("owner list out of order: %+v", entries)
	}
}

func TestListHistoryForeignExercise(t *testing.T) {
	_, handler := newTestStack(t)
	_, aliceToken := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")
	_, bobToken := registerAndLogin(t, handler, "bob", "bob@x.com", "pw12345")

	view := createExercise(t, handler, aliceToken, map[string]interface{}{"name": "Run"})

	missing := doRequest(t, handler, http.MethodGet, "/history?exerciseId=ghost", aliceToken, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing exercise: expected 404 got %d", missing.Code)
	}

	foreign := doRequest(t, handler, http.MethodGet, "/history?exerciseId="+view.ID, bobToken, nil)
	if foreign.Code != http.StatusForbidden {
		t.Fatalf("foreign exercise: expected 403 got %d", foreign.Code)
	}
}

func TestDeleteHistory(t *testing.T) {
	_, handler := newTestStack(t)
	_, token := registerAndLogin(t, handler, "alice", "alice@x.com", "pw12345")
	view := createExercise(t, handler, token, map[string]interface{}{"name": "Run"})

	rr := doRequest(t, handler, http.MethodPost, "/history", token, map[string]interface{}{
		"bpm": 140, "exerciseId": view.ID,
	})
	var entry HistoryView
	decodeBody(t, rr, &entry)

	rr = doRequest(t, handler, http.MethodDelete, "/history/"+entry.ID, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, handler, http.MethodGet, "/history/"+entry.ID, token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}
