// Package pricing computes the next price for one character from its
// current state, a market snapshot, and a set of random draws. It is a pure
// function of its inputs: no locks, no clocks, no shared state, so the whole
// model can be unit-tested without the engine.
package pricing

import (
	"fmt"
	"math"

	"github.com/talgya/grand-line/internal/entropy"
)

// Params holds every tunable constant of the price model.
type Params struct {
	// MinPrice and MaxPrice clamp every computed price.
	MinPrice float64
	MaxPrice float64

	// BootstrapLow/High bound the opening price seeded for a character
	// whose price is still exactly zero.
	BootstrapLow  float64
	BootstrapHigh float64

	// Below EarlyStageCutoff the growth rate is multiplied by
	// EarlyStageBoost, so cheap characters accelerate out of the gate.
	EarlyStageCutoff float64
	EarlyStageBoost  float64

	// BountyCoeff scales the log10 bounty influence.
	BountyCoeff float64

	// EventBoost multiplies every price while a major event is active.
	EventBoost float64

	// CrewBonuses maps a crew label to its popularity multiplier.
	// Crews not listed get 1.0.
	CrewBonuses map[string]float64
}

// DefaultParams returns the standard model constants: prices clamped to
// [$0.01, $10,000], openings in [$0.40, $0.75], a 20% main-crew bonus and a
// 15% bonus for the Emperor crews.
func DefaultParams() Params {
	return Params{
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
	}
}

// Validate rejects parameter sets the model cannot run with.
func (p Params) Validate() error {
	if p.MinPrice <= 0 || p.MaxPrice <= p.MinPrice {
		return fmt.Errorf("pricing: clamp bounds [%.4f, %.4f] invalid", p.MinPrice, p.MaxPrice)
	}
	if p.BootstrapLow <= 0 || p.BootstrapHigh <= p.BootstrapLow {
		return fmt.Errorf("pricing: bootstrap range [%.4f, %.4f] invalid", p.BootstrapLow, p.BootstrapHigh)
	}
	if p.EventBoost < 1.0 {
		return fmt.Errorf("pricing: event boost %.2f below 1.0", p.EventBoost)
	}
	for crew, bonus := range p.CrewBonuses {
		if bonus < 1.0 {
			return fmt.Errorf("pricing: crew bonus for %q is %.2f, below 1.0", crew, bonus)
		}
	}
	return nil
}

// Instrument is the slice of character state the calculator reads.
type Instrument struct {
	Price      float64
	GrowthRate float64
	Volatility float64
	Bounty     int64
	Crew       string
}

// Market is the slice of market state the calculator reads. ArcMultiplier
// already includes any per-character arc bonus.
type Market struct {
	ArcMultiplier    float64
	MajorEventActive bool
}

// Result is the recomputed price and its percentage change.
type Result struct {
	Price        float64
	WeeklyChange float64
}

// Next computes the character's next price. It is total: for any inputs,
// including extreme draws, the result is finite and within the clamp bounds.
//
// A zero previous price is the bootstrap case and seeds a small random
// opening. Otherwise five multiplicative factors apply to the previous
// price: compound growth scaled by the arc, gaussian volatility, log-scaled
// bounty influence, crew popularity, and the major-event boost.
func Next(inst Instrument, mkt Market, d entropy.Draws, p Params) Result {
	prev := inst.Price

	var price float64
	if prev == 0 {
		price = p.BootstrapLow + d.Bootstrap*(p.BootstrapHigh-p.BootstrapLow)
	} else {
		growthRate := inst.GrowthRate
		if prev < p.EarlyStageCutoff {
			growthRate *= p.EarlyStageBoost
		}
		growth := 1.0 + growthRate*mkt.ArcMultiplier

		// Can dip below zero on a hard negative draw; the clamp floors it.
		volatility := 1.0 + d.Normal*inst.Volatility

		bounty := 1.0
		if inst.Bounty > 0 {
			bounty = 1.0 + math.Log10(float64(inst.Bounty)+1)*p.BountyCoeff
		}

		crew := 1.0
		if b, ok := p.CrewBonuses[inst.Crew]; ok {
			crew = b
		}

		event := 1.0
		if mkt.MajorEventActive {
			event = p.EventBoost
		}

		price = prev * growth * volatility * bounty * crew * event
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = p.MinPrice
	}
	price = math.Max(price, p.MinPrice)
	price = math.Min(price, p.MaxPrice)

	var change float64
	switch {
	case prev > 0:
		change = (price - prev) / prev * 100.0
	case price > 0:
		change = 100.0
	}

	return Result{Price: price, WeeklyChange: change}
}
