// Package engine drives the market simulation: a price loop and a narrative
// loop ticking against one lock-guarded state block, broadcasting per
// character price updates to the configured sinks.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/grand-line/internal/entropy"
	"github.com/talgya/grand-line/internal/market"
	"github.com/talgya/grand-line/internal/narrative"
	"github.com/talgya/grand-line/internal/pricing"
	"github.com/talgya/grand-line/internal/sink"
)

// Config holds the engine's timing and event constants.
type Config struct {
	// PriceInterval is the period of the price loop. One tick is one
	// simulated day.
	PriceInterval time.Duration
	// NarrativeInterval is the period of the story-progression loop.
	NarrativeInterval time.Duration
	// EventProbability is the per-tick chance of a major market event.
	EventProbability float64
	// EventDuration is how long a major event keeps prices boosted.
	EventDuration time.Duration
	// DaysPerArc is how many simulated days each story arc lasts.
	DaysPerArc int
	// Seed makes a run reproducible. Two engines with equal seeds and
	// rosters produce identical price sequences.
	Seed int64
	// Pricing holds the price model constants.
	Pricing pricing.Params
}

// DefaultConfig returns the standard timings: 1s price ticks, 30s story
// ticks, 10% event chance with a 10s boost, 100 days per arc.
func DefaultConfig() Config {
	return Config{
		PriceInterval:     time.Second,
		NarrativeInterval: 30 * time.Second,
		EventProbability:  0.10,
		EventDuration:     10 * time.Second,
		DaysPerArc:        narrative.DefaultDaysPerArc,
		Seed:              1,
		Pricing:           pricing.DefaultParams(),
	}
}

// Validate rejects configurations the engine refuses to start with.
func (c Config) Validate() error {
	if c.PriceInterval <= 0 {
		return fmt.Errorf("engine: price interval %v must be positive", c.PriceInterval)
	}
	if c.NarrativeInterval <= 0 {
		return fmt.Errorf("engine: narrative interval %v must be positive", c.NarrativeInterval)
	}
	if c.EventProbability < 0 || c.EventProbability > 1 {
		return fmt.Errorf("engine: event probability %.3f outside [0,1]", c.EventProbability)
	}
	if c.EventDuration <= 0 {
		return fmt.Errorf("engine: event duration %v must be positive", c.EventDuration)
	}
	if c.DaysPerArc <= 0 {
		return fmt.Errorf("engine: days per arc %d must be positive", c.DaysPerArc)
	}
	return c.Pricing.Validate()
}

// Engine owns the complete market state. All reads and writes of characters
// and meta go through mu; sinks and the recorder are only ever called after
// the lock is released.
type Engine struct {
	cfg      Config
	bonuses  narrative.BonusTable
	sinks    []sink.Sink
	recorder Recorder

	// rand is owned by the price loop; noise is stateless.
	rand  *entropy.Source
	noise opensimplex.Noise

	mu         sync.Mutex
	characters []*market.Character
	meta       market.Meta
	timeline   *narrative.Timeline
	resetTimer *time.Timer

	paused  atomic.Bool
	started atomic.Bool

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New validates the configuration and roster and assembles a stopped engine.
// Pass nil arcs or bonuses to use the built-in story data.
func New(cfg Config, roster []market.RosterEntry, arcs []narrative.Arc, bonuses narrative.BonusTable, sinks ...sink.Sink) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	characters, err := market.BuildRoster(roster)
	if err != nil {
		return nil, err
	}
	if arcs == nil {
		arcs = narrative.DefaultArcs()
	}
	if bonuses == nil {
		bonuses = narrative.DefaultBonuses()
	}
	timeline, err := narrative.NewTimeline(arcs, cfg.DaysPerArc)
	if err != nil {
		return nil, err
	}
	if err := bonuses.Validate(arcs); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		bonuses:    bonuses,
		sinks:      sinks,
		rand:       entropy.NewSource(cfg.Seed),
		noise:      opensimplex.NewNormalized(cfg.Seed),
		characters: characters,
		meta:       market.NewMeta(timeline.Current().Name),
		timeline:   timeline,
		stopCh:     make(chan struct{}),
	}, nil
}

// SetRecorder attaches a journal before Start.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// SetSinks replaces the notification sinks before Start. Exists so a sink
// that itself needs the engine's Snapshot can be attached after New.
func (e *Engine) SetSinks(sinks ...sink.Sink) {
	e.sinks = sinks
}

// Start launches the price and narrative loops.
func (e *Engine) Start() error {
	if !e.started.CompareAndSwap(false, true) {
		return errors.New("engine already started")
	}
	slog.Info("price engine started",
		"characters", len(e.characters),
		"arc", e.timeline.Current().Name,
		"price_interval", e.cfg.PriceInterval,
		"narrative_interval", e.cfg.NarrativeInterval,
		"seed", e.cfg.Seed,
	)
	e.wg.Add(2)
	go e.runPriceLoop()
	go e.runNarrativeLoop()
	return nil
}

// Stop halts both loops, waiting for any in-flight tick to finish, and
// cancels the pending event reset. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
	e.wg.Wait()

	e.mu.Lock()
	if e.resetTimer != nil {
		e.resetTimer.Stop()
		e.resetTimer = nil
	}
	day := e.meta.DaysElapsed
	e.mu.Unlock()

	slog.Info("price engine stopped", "day", day)
}

// SetPaused suspends or resumes both loops without tearing the engine down.
func (e *Engine) SetPaused(paused bool) {
	e.paused.Store(paused)
	slog.Info("price engine pause toggled", "paused", paused)
}

// Paused reports whether the loops are currently suspended.
func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// Snapshot returns a consistent copy of all character and market state,
// taken under the lock at one instant.
func (e *Engine) Snapshot() market.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	characters := make([]market.CharacterSnapshot, 0, len(e.characters))
	for _, c := range e.characters {
		characters = append(characters, market.SnapshotOf(c))
	}
	return market.Snapshot{
		Characters: characters,
		Meta:       e.meta,
		TakenAt:    time.Now(),
	}
}

func (e *Engine) runPriceLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.PriceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case now := <-ticker.C:
			if e.paused.Load() {
				continue
			}
			updates, entries := e.step(now)
			e.publish(updates)
			e.journal(entries)
		}
	}
}

func (e *Engine) runNarrativeLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.NarrativeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case now := <-ticker.C:
			if e.paused.Load() {
				continue
			}
			e.journal(e.stepNarrative(now))
		}
	}
}

// publish fans updates out to every sink, after the state lock has been
// released. A rejected update is logged and never retried here; retry is the
// sink's business.
func (e *Engine) publish(updates []market.Update) {
	for _, u := range updates {
		for _, s := range e.sinks {
			if err := s.Publish(u); err != nil {
				slog.Warn("price update dropped",
					"sink", fmt.Sprintf("%T", s),
					"character", u.Name,
					"error", err,
				)
			}
		}
	}
}

func (e *Engine) journal(entries []Entry) {
	if e.recorder == nil {
		return
	}
	for _, entry := range entries {
		if err := e.recorder.Append(entry); err != nil {
			slog.Warn("journal append failed", "type", entry.Type, "error", err)
		}
	}
}
