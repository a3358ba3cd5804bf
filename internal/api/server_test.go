package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talgya/grand-line/internal/engine"
	"github.com/talgya/grand-line/internal/market"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := engine.DefaultConfig()
	cfg.Seed = 42
	eng, err := engine.New(cfg, market.DefaultRoster(), nil, nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return &Server{Engine: eng, AdminKey: "test-key"}
}

func TestStatusEndpoint(t *testing.T) {
	s := testServer(t)

	w := httptest.NewRecorder()
	s.handleStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["characters"].(float64) != 17 {
		t.Errorf("characters = %v, want 17", body["characters"])
	}
	if body["arc"].(string) != "East Blue Saga" {
		t.Errorf("arc = %v", body["arc"])
	}
	if body["paused"].(bool) {
		t.Error("fresh engine reported paused")
	}
}

func TestPricesEndpointSortsByPrice(t *testing.T) {
	s := testServer(t)

	w := httptest.NewRecorder()
	s.handlePrices(w, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	var snap market.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(snap.Characters) != 17 {
		t.Fatalf("characters = %d, want 17", len(snap.Characters))
	}
	for i := 1; i < len(snap.Characters); i++ {
		if snap.Characters[i].Price > snap.Characters[i-1].Price {
			t.Fatalf("characters not sorted by price descending at index %d", i)
		}
	}
}

func TestCharacterEndpoint(t *testing.T) {
	s := testServer(t)

	w := httptest.NewRecorder()
	s.handleCharacter(w, httptest.NewRequest(http.MethodGet, "/api/v1/character/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	var c market.CharacterSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Name != "Monkey D. Luffy" {
		t.Errorf("character 1 = %q", c.Name)
	}

	w = httptest.NewRecorder()
	s.handleCharacter(w, httptest.NewRequest(http.MethodGet, "/api/v1/character/999", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	s.handleCharacter(w, httptest.NewRequest(http.MethodGet, "/api/v1/character/zoro", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}

func TestEventsEndpointWithoutJournal(t *testing.T) {
	s := testServer(t)

	w := httptest.NewRecorder()
	s.handleEvents(w, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without journal", w.Code)
	}
}

func TestPauseRequiresBearerToken(t *testing.T) {
	s := testServer(t)
	handler := s.adminOnly(s.handlePause)

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pause", strings.NewReader(`{"paused":true}`))
	handler(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}
	if s.Engine.Paused() {
		t.Error("engine paused by unauthorized request")
	}

	// Wrong method.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/pause", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	handler(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", w.Code)
	}

	// Valid.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/pause", strings.NewReader(`{"paused":true}`))
	req.Header.Set("Authorization", "Bearer test-key")
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authorized status = %d", w.Code)
	}
	if !s.Engine.Paused() {
		t.Error("engine not paused after authorized request")
	}
}
