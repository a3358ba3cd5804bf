// Command marketsim runs the Grand Line character market simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/grand-line/internal/api"
	"github.com/talgya/grand-line/internal/config"
	"github.com/talgya/grand-line/internal/engine"
	"github.com/talgya/grand-line/internal/journal"
	"github.com/talgya/grand-line/internal/market"
	"github.com/talgya/grand-line/internal/pricing"
	"github.com/talgya/grand-line/internal/sink"
)

const summaryInterval = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply without one)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Grand Line Market — dynamic price simulation")

	// ── Configuration ────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		slog.Info("config loaded", "path", *configPath)
	}

	// ── Journal ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755)
	db, err := journal.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open journal", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("journal opened", "path", cfg.Database.Path)

	// ── Roster (stored roster wins; fresh databases get the default) ─
	roster, err := db.LoadRoster()
	if err != nil {
		slog.Error("failed to load roster", "error", err)
		os.Exit(1)
	}
	if len(roster) == 0 {
		roster = market.DefaultRoster()
		if err := db.SeedRoster(roster); err != nil {
			slog.Error("failed to seed roster", "error", err)
			os.Exit(1)
		}
		slog.Info("seeded default roster", "characters", len(roster))
	} else {
		slog.Info("roster restored", "characters", len(roster))
	}

	// ── Sinks ────────────────────────────────────────────────────────
	var sinks []sink.Sink
	var hub *sink.Hub
	if cfg.Sinks.Console {
		sinks = append(sinks, sink.NewConsole())
	}

	// ── Engine ───────────────────────────────────────────────────────
	engCfg := engine.Config{
		PriceInterval:     cfg.Simulation.PriceInterval,
		NarrativeInterval: cfg.Simulation.NarrativeInterval,
		EventProbability:  cfg.Simulation.EventProbability,
		EventDuration:     cfg.Simulation.EventDuration,
		DaysPerArc:        cfg.Narrative.DaysPerArc,
		Seed:              cfg.Simulation.Seed,
		Pricing:           pricingParams(cfg),
	}

	eng, err := engine.New(engCfg, roster, cfg.Narrative.Arcs, cfg.Narrative.Bonuses)
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		os.Exit(1)
	}
	eng.SetRecorder(db)

	if cfg.Sinks.WebSocket {
		hub = sink.NewHub(eng.Snapshot)
		sinks = append(sinks, hub)
	}
	eng.SetSinks(sinks...)

	// ── HTTP API ─────────────────────────────────────────────────────
	apiServer := &api.Server{
		Engine:   eng,
		Journal:  db,
		Hub:      hub,
		Port:     cfg.API.Port,
		AdminKey: cfg.API.AdminKey,
	}
	apiServer.Start()

	// ── Start ────────────────────────────────────────────────────────
	if err := eng.Start(); err != nil {
		slog.Error("failed to start engine", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("\nThe market is open: %d characters, starting in %s.\n",
		len(roster), eng.Snapshot().Meta.Arc)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.API.Port)
	fmt.Println("Running... (Ctrl+C to stop)")

	summary := time.NewTicker(summaryInterval)
	defer summary.Stop()

	for {
		select {
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			eng.Stop()
			if hub != nil {
				hub.Close()
			}
			fmt.Println("Market closed.")
			return
		case <-summary.C:
			logSummary(eng.Snapshot())
		}
	}
}

func pricingParams(cfg *config.Config) (p pricing.Params) {
	p.MinPrice = cfg.Pricing.MinPrice
	p.MaxPrice = cfg.Pricing.MaxPrice
	p.BootstrapLow = cfg.Pricing.BootstrapLow
	p.BootstrapHigh = cfg.Pricing.BootstrapHigh
	p.EarlyStageCutoff = cfg.Pricing.EarlyStageCutoff
	p.EarlyStageBoost = cfg.Pricing.EarlyStageBoost
	p.BountyCoeff = cfg.Pricing.BountyCoeff
	p.EventBoost = cfg.Pricing.EventBoost
	p.CrewBonuses = cfg.Pricing.CrewBonuses
	return p
}

// logSummary reports the market leaders and total capitalization.
func logSummary(snap market.Snapshot) {
	sort.Slice(snap.Characters, func(i, j int) bool {
		return snap.Characters[i].Price > snap.Characters[j].Price
	})

	totalCap := 0.0
	for _, c := range snap.Characters {
		totalCap += c.MarketCap
	}

	slog.Info("market summary",
		"day", snap.Meta.DaysElapsed,
		"year", snap.Meta.CurrentYear,
		"arc", snap.Meta.Arc,
		"major_event", snap.Meta.MajorEventActive,
		"sentiment", fmt.Sprintf("%.3f", snap.Meta.Sentiment),
		"total_market_cap", "$"+humanize.CommafWithDigits(totalCap, 2),
	)

	top := snap.Characters
	if len(top) > 5 {
		top = top[:5]
	}
	for _, c := range top {
		slog.Info("market leader",
			"name", c.Name,
			"crew", c.Crew,
			"price", fmt.Sprintf("$%.2f", c.Price),
			"change", fmt.Sprintf("%+.1f%%", c.WeeklyChange),
		)
	}
}
