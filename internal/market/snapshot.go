package market

import "time"

// MarketCapScale converts a unit price into a notional market cap for
// display purposes (one million outstanding "shares" per character).
const MarketCapScale = 1_000_000

// Update is one per-character price notification, emitted once per price
// tick after the engine releases its lock. Sinks receive copies only.
type Update struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Crew         string    `json:"crew"`
	Price        float64   `json:"current_price"`
	WeeklyChange float64   `json:"weekly_change"`
	MarketCap    float64   `json:"market_cap"`
	Arc          string    `json:"story_arc"`
	Timestamp    time.Time `json:"timestamp"`
}

// CharacterSnapshot is a read-only copy of one character's state.
type CharacterSnapshot struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Crew         string    `json:"crew"`
	Bounty       int64     `json:"bounty"`
	Price        float64   `json:"current_price"`
	WeeklyChange float64   `json:"weekly_change"`
	MarketCap    float64   `json:"market_cap"`
	LastUpdate   time.Time `json:"last_update"`
}

// Snapshot is a consistent view of the whole market, taken under the engine
// lock at one instant.
type Snapshot struct {
	Characters []CharacterSnapshot `json:"characters"`
	Meta       Meta                `json:"market_data"`
	TakenAt    time.Time           `json:"taken_at"`
}

// SnapshotOf copies a character into its read-only form.
func SnapshotOf(c *Character) CharacterSnapshot {
	return CharacterSnapshot{
		ID:           c.ID,
		Name:         c.Name,
		Crew:         c.Crew,
		Bounty:       c.Bounty,
		Price:        c.CurrentPrice,
		WeeklyChange: c.WeeklyChange,
		MarketCap:    c.CurrentPrice * MarketCapScale,
		LastUpdate:   c.LastUpdate,
	}
}
