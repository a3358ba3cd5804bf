package narrative

import "fmt"

// Bonus grants one character an extra multiplier during one arc, on top of
// the arc's base multiplier. These mark signature story moments.
type Bonus struct {
	Arc       string  `yaml:"arc"`
	Character string  `yaml:"character"`
	Factor    float64 `yaml:"factor"`
}

// BonusTable is the lookup consulted by the price calculator. If several
// entries match the same (arc, character) pair, the largest factor wins.
type BonusTable []Bonus

// DefaultBonuses returns the built-in signature moments: Luffy at
// Marineford, and the Gear 5 reveal plus Kaido's last stand in Wano.
func DefaultBonuses() BonusTable {
	return BonusTable{
		{"Summit War Saga", "Monkey D. Luffy", 2.0},
		{"Wano Country Saga", "Monkey D. Luffy", 3.0},
		{"Wano Country Saga", "Kaido", 2.5},
	}
}

// Validate checks every bonus references a known arc and carries a factor
// of at least 1.0.
func (bt BonusTable) Validate(arcs []Arc) error {
	known := make(map[string]bool, len(arcs))
	for _, a := range arcs {
		known[a.Name] = true
	}
	for _, b := range bt {
		if !known[b.Arc] {
			return fmt.Errorf("narrative: bonus for %q references unknown arc %q", b.Character, b.Arc)
		}
		if b.Character == "" {
			return fmt.Errorf("narrative: bonus in arc %q has no character", b.Arc)
		}
		if b.Factor < 1.0 {
			return fmt.Errorf("narrative: bonus for %q in %q has factor %.2f below 1.0", b.Character, b.Arc, b.Factor)
		}
	}
	return nil
}

// Multiplier returns the effective arc multiplier for a character: the arc's
// base multiplier times the largest matching bonus, if any.
func (bt BonusTable) Multiplier(arc Arc, character string) float64 {
	best := 1.0
	for _, b := range bt {
		if b.Arc == arc.Name && b.Character == character && b.Factor > best {
			best = b.Factor
		}
	}
	return arc.Multiplier * best
}
