package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/drishti/internal/focus"
)

func TestStatsHandler_Totals(t *testing.T) {
	s := newTestStore(t)
	seedSession(t, s, 1800, 200, 3)
	seedSession(t, s, 1200, 800, 7)

	h := NewStatsHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Sessions != 2 {
		t.Errorf("expected 2 sessions, got %d", response.Sessions)
	}
	if response.FocusedSeconds != 3000 {
		t.Errorf("expected 3000 focused seconds, got %f", response.FocusedSeconds)
	}
	if response.DistractionCount != 10 {
		t.Errorf("expected 10 distractions, got %d", response.DistractionCount)
	}
	// 3000 / 4000 attributed seconds
	if response.FocusPercent != 75 {
		t.Errorf("expected 75%% focus, got %f", response.FocusPercent)
	}
	if response.Current != nil {
		t.Error("expected no current stats without a state source")
	}
}

func TestStatsHandler_IncludesCurrentSession(t *testing.T) {
	s := newTestStore(t)
	seedSession(t, s, 1000, 0, 0)

	state := func() focus.Snapshot {
		return focus.Snapshot{
			Stats: focus.Stats{
				FocusedSeconds:    90,
				DistractedSeconds: 10,
				DistractionCount:  1,
			},
		}
	}

	h := NewStatsHandler(s, state)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Current == nil {
		t.Fatal("expected current stats")
	}
	if response.Current.FocusedSeconds != 90 {
		t.Errorf("expected 90 current focused seconds, got %f", response.Current.FocusedSeconds)
	}
	if response.Current.FocusPercent != 90 {
		t.Errorf("expected 90%% current focus, got %f", response.Current.FocusPercent)
	}
}

func TestStatsHandler_EmptyStore(t *testing.T) {
	s := newTestStore(t)
	h := NewStatsHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.FocusPercent != 0 {
		t.Errorf("expected 0%% with no attributed time, got %f", response.FocusPercent)
	}
}

func TestStatsHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	h := NewStatsHandler(s, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
