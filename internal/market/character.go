// Package market holds the entities the price engine simulates: tradeable
// characters and the global market clock.
package market

import (
	"fmt"
	"time"
)

// DefaultVolatility is the noise scale applied to every character's price
// swings. High on purpose — the market is meant to move dramatically.
const DefaultVolatility = 0.3

// Character is a tradeable instrument. Identity fields (ID, Name, Crew,
// Bounty, BaseGrowthRate) are fixed at creation; price fields are rewritten
// every price tick by the engine, under its lock.
type Character struct {
	ID     int64
	Name   string
	Crew   string
	Bounty int64

	CurrentPrice   float64
	BaseGrowthRate float64
	Volatility     float64
	WeeklyChange   float64 // percent change from the previous tick
	LastUpdate     time.Time
}

// NewCharacter creates a character with its price at exactly zero. The first
// price tick seeds the opening price.
func NewCharacter(id int64, name, crew string, bounty int64, growthRate float64) (*Character, error) {
	if name == "" {
		return nil, fmt.Errorf("character %d: empty name", id)
	}
	if bounty < 0 {
		return nil, fmt.Errorf("character %q: negative bounty %d", name, bounty)
	}
	if growthRate <= 0 || growthRate >= 1 {
		return nil, fmt.Errorf("character %q: growth rate %.3f outside (0,1)", name, growthRate)
	}
	return &Character{
		ID:             id,
		Name:           name,
		Crew:           crew,
		Bounty:         bounty,
		CurrentPrice:   0.0,
		BaseGrowthRate: growthRate,
		Volatility:     DefaultVolatility,
	}, nil
}

// Meta is the single global market clock and mood. Mutated only by the
// engine's two loops, under the engine lock.
type Meta struct {
	DaysElapsed int `json:"days_elapsed"`
	CurrentYear int `json:"current_year"`

	ArcIndex int    `json:"arc_index"`
	Arc      string `json:"current_arc"`

	MajorEventActive bool `json:"major_event_active"`

	// Informational fields, not consumed by the price calculator.
	Sentiment       float64 `json:"market_sentiment"`
	VolatilityIndex float64 `json:"volatility_index"`

	LastUpdate time.Time `json:"last_update"`
}

// NewMeta returns the market state at day zero of year one.
func NewMeta(firstArc string) Meta {
	return Meta{
		CurrentYear:     1,
		Arc:             firstArc,
		Sentiment:       0.5,
		VolatilityIndex: 0.5,
	}
}
