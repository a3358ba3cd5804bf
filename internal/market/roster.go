package market

import (
	"errors"
	"fmt"
)

// RosterEntry is the creation-time description of one character.
type RosterEntry struct {
	ID         int64
	Name       string
	Crew       string
	Bounty     int64
	GrowthRate float64
}

// Crew labels the pricing model treats specially.
const (
	CrewStrawHats  = "Straw Hat Pirates"
	CrewBeasts     = "Beast Pirates"
	CrewBigMom     = "Big Mom Pirates"
	CrewBlackbeard = "Blackbeard Pirates"
	CrewDonquixote = "Donquixote Pirates"
	CrewMarines    = "Marines"
)

// DefaultRoster returns the built-in character list: the main crew with
// steady growth, the major antagonists with explosive growth, and the
// admirals (no bounty, bounty factor stays neutral for them).
func DefaultRoster() []RosterEntry {
	return []RosterEntry{
		{1, "Monkey D. Luffy", CrewStrawHats, 3_000_000_000, 0.15},
		{2, "Roronoa Zoro", CrewStrawHats, 1_111_000_000, 0.12},
		{3, "Nami", CrewStrawHats, 366_000_000, 0.08},
		{4, "Usopp", CrewStrawHats, 500_000_000, 0.07},
		{5, "Sanji", CrewStrawHats, 1_032_000_000, 0.11},
		{6, "Tony Tony Chopper", CrewStrawHats, 1_000, 0.06},
		{7, "Nico Robin", CrewStrawHats, 930_000_000, 0.10},
		{8, "Franky", CrewStrawHats, 394_000_000, 0.09},
		{9, "Brook", CrewStrawHats, 383_000_000, 0.08},
		{10, "Jinbe", CrewStrawHats, 1_100_000_000, 0.13},
		{11, "Kaido", CrewBeasts, 4_611_100_000, 0.20},
		{12, "Big Mom", CrewBigMom, 4_388_000_000, 0.18},
		{13, "Blackbeard", CrewBlackbeard, 3_996_000_000, 0.25},
		{14, "Doflamingo", CrewDonquixote, 340_000_000, 0.14},
		{15, "Akainu", CrewMarines, 0, 0.16},
		{16, "Kizaru", CrewMarines, 0, 0.15},
		{17, "Aokiji", CrewMarines, 0, 0.14},
	}
}

// ErrEmptyRoster is returned when the engine is started with no characters.
var ErrEmptyRoster = errors.New("empty roster")

// ValidateRoster checks the roster constraints the engine refuses to run
// without: at least one entry, unique IDs, and per-entry invariants.
func ValidateRoster(entries []RosterEntry) error {
	if len(entries) == 0 {
		return ErrEmptyRoster
	}
	seen := make(map[int64]string, len(entries))
	for _, e := range entries {
		if other, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate character id %d (%q and %q)", e.ID, other, e.Name)
		}
		seen[e.ID] = e.Name
		if _, err := NewCharacter(e.ID, e.Name, e.Crew, e.Bounty, e.GrowthRate); err != nil {
			return err
		}
	}
	return nil
}

// BuildRoster validates the entries and materializes them as characters.
func BuildRoster(entries []RosterEntry) ([]*Character, error) {
	if err := ValidateRoster(entries); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}
	chars := make([]*Character, 0, len(entries))
	for _, e := range entries {
		c, _ := NewCharacter(e.ID, e.Name, e.Crew, e.Bounty, e.GrowthRate)
		chars = append(chars, c)
	}
	return chars, nil
}
