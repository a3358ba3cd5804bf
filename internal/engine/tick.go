// Tick execution: one simulated day per price tick, one story check per
// narrative tick. Both run under the engine lock; notifications go out after
// the lock is released.

package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/grand-line/internal/market"
	"github.com/talgya/grand-line/internal/pricing"
)

// sentimentFrequency controls how fast the market mood drifts across days.
const sentimentFrequency = 0.02

// step advances the clock one day and recomputes every character's price.
// The day counter moves before any price does, so all characters observe the
// same day within a tick. Returns the updates and journal entries to emit
// once the lock is released.
func (e *Engine) step(now time.Time) ([]market.Update, []Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.meta.DaysElapsed++
	if e.meta.DaysElapsed%365 == 0 {
		e.meta.CurrentYear++
		slog.Info("new market year", "year", e.meta.CurrentYear, "day", e.meta.DaysElapsed)
	}

	// Mood drifts smoothly with the day counter; informational only.
	x := float64(e.meta.DaysElapsed) * sentimentFrequency
	e.meta.Sentiment = e.noise.Eval2(x, 0)
	e.meta.VolatilityIndex = e.noise.Eval2(x, 100)

	arc := e.timeline.Current()
	mkt := pricing.Market{MajorEventActive: e.meta.MajorEventActive}

	updates := make([]market.Update, 0, len(e.characters))
	for _, c := range e.characters {
		mkt.ArcMultiplier = e.bonuses.Multiplier(arc, c.Name)
		res := pricing.Next(pricing.Instrument{
			Price:      c.CurrentPrice,
			GrowthRate: c.BaseGrowthRate,
			Volatility: c.Volatility,
			Bounty:     c.Bounty,
			Crew:       c.Crew,
		}, mkt, e.rand.Draw(), e.cfg.Pricing)

		c.CurrentPrice = res.Price
		c.WeeklyChange = res.WeeklyChange
		c.LastUpdate = now

		updates = append(updates, market.Update{
			ID:           c.ID,
			Name:         c.Name,
			Crew:         c.Crew,
			Price:        c.CurrentPrice,
			WeeklyChange: c.WeeklyChange,
			MarketCap:    c.CurrentPrice * market.MarketCapScale,
			Arc:          arc.Name,
			Timestamp:    now,
		})
	}

	var entries []Entry
	if e.rand.Float() < e.cfg.EventProbability {
		entries = append(entries, e.triggerEventLocked(now))
	}
	e.meta.LastUpdate = now

	return updates, entries
}

// stepNarrative advances the story by at most one arc when enough days have
// passed. Every transition flips the major-event flag, matching the hype a
// new saga brings.
func (e *Engine) stepNarrative(now time.Time) []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.timeline.Advance(e.meta.DaysElapsed) {
		return nil
	}

	arc := e.timeline.Current()
	e.meta.ArcIndex = e.timeline.Index()
	e.meta.Arc = arc.Name
	e.meta.MajorEventActive = true
	e.scheduleEventResetLocked()

	slog.Info("story progressed",
		"arc", arc.Name,
		"multiplier", arc.Multiplier,
		"day", e.meta.DaysElapsed,
	)

	return []Entry{{
		ID:     uuid.NewString(),
		Day:    e.meta.DaysElapsed,
		Type:   EntryArcTransition,
		Arc:    arc.Name,
		Detail: arc.Name,
		At:     now,
	}}
}

// triggerEventLocked activates a random major event and schedules its reset.
func (e *Engine) triggerEventLocked(now time.Time) Entry {
	kind := EventKind(e.rand.Intn(int(numEventKinds)))
	e.meta.MajorEventActive = true
	e.scheduleEventResetLocked()

	slog.Info("major event", "event", kind.String(), "day", e.meta.DaysElapsed)

	return Entry{
		ID:     uuid.NewString(),
		Day:    e.meta.DaysElapsed,
		Type:   EntryMajorEvent,
		Arc:    e.meta.Arc,
		Detail: kind.String(),
		At:     now,
	}
}

// scheduleEventResetLocked arms the delayed deactivation. The timer sleeps
// outside the lock and only acquires it to clear the flag; Stop cancels it.
func (e *Engine) scheduleEventResetLocked() {
	if e.resetTimer != nil {
		e.resetTimer.Stop()
	}
	e.resetTimer = time.AfterFunc(e.cfg.EventDuration, func() {
		e.mu.Lock()
		e.meta.MajorEventActive = false
		e.mu.Unlock()
	})
}
