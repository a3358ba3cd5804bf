// Package narrative tracks story progression: an ordered sequence of arcs,
// each carrying a price multiplier, advanced as simulated days accumulate.
package narrative

import (
	"errors"
	"fmt"
)

// Arc is one named story phase and its market-wide price multiplier.
type Arc struct {
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
}

// DefaultArcs returns the canonical saga sequence. Multipliers grow toward
// the finale; Summit War, Wano and the Final Saga are the big movers.
func DefaultArcs() []Arc {
	return []Arc{
		{"East Blue Saga", 1.0},
		{"Alabasta Saga", 1.5},
		{"Sky Island Saga", 1.3},
		{"Water 7 Saga", 2.0},
		{"Thriller Bark Saga", 1.4},
		{"Summit War Saga", 3.0},
		{"Fish-Man Island Saga", 1.6},
		{"Dressrosa Saga", 2.2},
		{"Zou Saga", 1.8},
		{"Whole Cake Island Saga", 2.5},
		{"Wano Country Saga", 4.0},
		{"Final Saga", 5.0},
	}
}

// DefaultDaysPerArc is how many simulated days each arc lasts.
const DefaultDaysPerArc = 100

var errNoArcs = errors.New("narrative: no arcs configured")

// Timeline is a linear state machine over a fixed arc sequence. The index
// only ever moves forward, one arc at a time, and stops at the last arc.
type Timeline struct {
	arcs       []Arc
	daysPerArc int
	index      int
}

// NewTimeline validates the arc list and starts at the first arc.
func NewTimeline(arcs []Arc, daysPerArc int) (*Timeline, error) {
	if len(arcs) == 0 {
		return nil, errNoArcs
	}
	if daysPerArc <= 0 {
		return nil, fmt.Errorf("narrative: days per arc must be positive, got %d", daysPerArc)
	}
	for i, a := range arcs {
		if a.Name == "" {
			return nil, fmt.Errorf("narrative: arc %d has no name", i)
		}
		if a.Multiplier < 1.0 {
			return nil, fmt.Errorf("narrative: arc %q multiplier %.2f below 1.0", a.Name, a.Multiplier)
		}
	}
	return &Timeline{arcs: arcs, daysPerArc: daysPerArc}, nil
}

// Advance moves to the next arc if daysElapsed has crossed the next arc
// boundary, advancing by at most one arc per call. It reports whether a
// transition fired. At the last arc the timeline is terminal.
func (t *Timeline) Advance(daysElapsed int) bool {
	if t.index >= len(t.arcs)-1 {
		return false
	}
	if daysElapsed < (t.index+1)*t.daysPerArc {
		return false
	}
	t.index++
	return true
}

// Current returns the active arc.
func (t *Timeline) Current() Arc {
	return t.arcs[t.index]
}

// Index returns the active arc's position in the sequence.
func (t *Timeline) Index() int {
	return t.index
}

// Terminal reports whether the timeline has reached the final arc.
func (t *Timeline) Terminal() bool {
	return t.index == len(t.arcs)-1
}

// Arcs returns the full sequence.
func (t *Timeline) Arcs() []Arc {
	return t.arcs
}
