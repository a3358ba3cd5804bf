// Package config loads and validates the simulator's YAML configuration.
// Every knob defaults to the built-in constants, so an empty file
// (or no file at all) runs the canonical market.
package config

import (
	"time"

	"github.com/talgya/grand-line/internal/narrative"
)

// Config is the root configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Narrative  NarrativeConfig  `yaml:"narrative"`
	Sinks      SinksConfig      `yaml:"sinks"`
	API        APIConfig        `yaml:"api"`
	Database   DatabaseConfig   `yaml:"database"`
}

// SimulationConfig holds the scheduler's timing and event constants.
type SimulationConfig struct {
	Seed              int64         `yaml:"seed"`
	PriceInterval     time.Duration `yaml:"price_interval"`
	NarrativeInterval time.Duration `yaml:"narrative_interval"`
	EventProbability  float64       `yaml:"event_probability"`
	EventDuration     time.Duration `yaml:"event_duration"`
}

// PricingConfig holds the price model constants.
type PricingConfig struct {
	MinPrice         float64            `yaml:"min_price"`
	MaxPrice         float64            `yaml:"max_price"`
	BootstrapLow     float64            `yaml:"bootstrap_low"`
	BootstrapHigh    float64            `yaml:"bootstrap_high"`
	EarlyStageCutoff float64            `yaml:"early_stage_cutoff"`
	EarlyStageBoost  float64            `yaml:"early_stage_boost"`
	BountyCoeff      float64            `yaml:"bounty_coeff"`
	EventBoost       float64            `yaml:"event_boost"`
	CrewBonuses      map[string]float64 `yaml:"crew_bonuses"`
}

// NarrativeConfig holds the story progression data. Empty arcs or bonuses
// fall back to the built-in saga sequence.
type NarrativeConfig struct {
	DaysPerArc int               `yaml:"days_per_arc"`
	Arcs       []narrative.Arc   `yaml:"arcs"`
	Bonuses    []narrative.Bonus `yaml:"bonuses"`
}

// SinksConfig selects where price updates go.
type SinksConfig struct {
	Console   bool `yaml:"console"`
	WebSocket bool `yaml:"websocket"`
}

// APIConfig holds the HTTP surface settings. An empty AdminKey disables the
// admin endpoints.
type APIConfig struct {
	Port     int    `yaml:"port"`
	AdminKey string `yaml:"admin_key"`
}

// DatabaseConfig holds the journal location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the full built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Seed:              1,
			PriceInterval:     time.Second,
			NarrativeInterval: 30 * time.Second,
			EventProbability:  0.10,
			EventDuration:     10 * time.Second,
		},
		Pricing: PricingConfig{
			MinPrice:         0.01,
			MaxPrice:         10_000.0,
			BootstrapLow:     0.40,
			BootstrapHigh:    0.75,
			EarlyStageCutoff: 10.0,
			EarlyStageBoost:  2.0,
			BountyCoeff:      0.02,
			EventBoost:       1.5,
			CrewBonuses: map[string]float64{
				"Straw Hat Pirates": 1.20,
				"Beast Pirates":     1.15,
				"Big Mom Pirates":   1.15,
			},
		},
		Narrative: NarrativeConfig{
			DaysPerArc: narrative.DefaultDaysPerArc,
		},
		Sinks: SinksConfig{
			Console:   true,
			WebSocket: true,
		},
		API: APIConfig{
			Port: 8765,
		},
		Database: DatabaseConfig{
			Path: "data/market.db",
		},
	}
}

// applyDefaults fills unset numeric and string fields from Default. Booleans
// keep their zero value when omitted; both sinks are only enabled by
// Default() itself.
func (c *Config) applyDefaults() {
	d := Default()

	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = d.Simulation.Seed
	}
	if c.Simulation.PriceInterval == 0 {
		c.Simulation.PriceInterval = d.Simulation.PriceInterval
	}
	if c.Simulation.NarrativeInterval == 0 {
		c.Simulation.NarrativeInterval = d.Simulation.NarrativeInterval
	}
	if c.Simulation.EventProbability == 0 {
		c.Simulation.EventProbability = d.Simulation.EventProbability
	}
	if c.Simulation.EventDuration == 0 {
		c.Simulation.EventDuration = d.Simulation.EventDuration
	}

	if c.Pricing.MinPrice == 0 {
		c.Pricing.MinPrice = d.Pricing.MinPrice
	}
	if c.Pricing.MaxPrice == 0 {
		c.Pricing.MaxPrice = d.Pricing.MaxPrice
	}
	if c.Pricing.BootstrapLow == 0 {
		c.Pricing.BootstrapLow = d.Pricing.BootstrapLow
	}
	if c.Pricing.BootstrapHigh == 0 {
		c.Pricing.BootstrapHigh = d.Pricing.BootstrapHigh
	}
	if c.Pricing.EarlyStageCutoff == 0 {
		c.Pricing.EarlyStageCutoff = d.Pricing.EarlyStageCutoff
	}
	if c.Pricing.EarlyStageBoost == 0 {
		c.Pricing.EarlyStageBoost = d.Pricing.EarlyStageBoost
	}
	if c.Pricing.BountyCoeff == 0 {
		c.Pricing.BountyCoeff = d.Pricing.BountyCoeff
	}
	if c.Pricing.EventBoost == 0 {
		c.Pricing.EventBoost = d.Pricing.EventBoost
	}
	if c.Pricing.CrewBonuses == nil {
		c.Pricing.CrewBonuses = d.Pricing.CrewBonuses
	}

	if c.Narrative.DaysPerArc == 0 {
		c.Narrative.DaysPerArc = d.Narrative.DaysPerArc
	}

	if c.API.Port == 0 {
		c.API.Port = d.API.Port
	}
	if c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
}
