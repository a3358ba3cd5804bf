// Package api provides the HTTP surface for observing the market.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/grand-line/internal/engine"
	"github.com/talgya/grand-line/internal/journal"
	"github.com/talgya/grand-line/internal/sink"
)

// Server serves market state over HTTP. Read handlers only ever touch the
// engine through Snapshot, so they never contend with a tick for long.
type Server struct {
	Engine   *engine.Engine
	Journal  *journal.DB // optional; /events 404s without it
	Hub      *sink.Hub   // optional; /ws 404s without it
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	startedAt time.Time
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.startedAt = time.Now()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/prices", s.handlePrices)
	mux.HandleFunc("/api/v1/character/", s.handleCharacter)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	if s.Hub != nil {
		mux.HandleFunc("/ws", s.Hub.ServeWS)
	}

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/pause", s.adminOnly(s.handlePause))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "websocket", s.Hub != nil)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	if s.AdminKey == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Engine.Snapshot()
	writeJSON(w, map[string]any{
		"day":                snap.Meta.DaysElapsed,
		"year":               snap.Meta.CurrentYear,
		"arc":                snap.Meta.Arc,
		"arc_index":          snap.Meta.ArcIndex,
		"major_event_active": snap.Meta.MajorEventActive,
		"market_sentiment":   snap.Meta.Sentiment,
		"volatility_index":   snap.Meta.VolatilityIndex,
		"characters":         len(snap.Characters),
		"paused":             s.Engine.Paused(),
		"uptime_seconds":     int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	snap := s.Engine.Snapshot()
	sort.Slice(snap.Characters, func(i, j int) bool {
		return snap.Characters[i].Price > snap.Characters[j].Price
	})
	writeJSON(w, snap)
}

func (s *Server) handleCharacter(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/character/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid character id", http.StatusBadRequest)
		return
	}

	snap := s.Engine.Snapshot()
	for _, c := range snap.Characters {
		if c.ID == id {
			writeJSON(w, c)
			return
		}
	}
	http.Error(w, "character not found", http.StatusNotFound)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		http.Error(w, "journal not configured", http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := s.Journal.Recent(limit)
	if err != nil {
		slog.Error("journal read failed", "error", err)
		http.Error(w, "journal read failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"events": entries})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.Engine.SetPaused(req.Paused)
	writeJSON(w, map[string]any{"paused": req.Paused})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
