// Package entropy supplies the random draws that drive price volatility and
// event triggering. Each Source is seeded and owned by exactly one goroutine,
// so runs are reproducible and no locking is needed.
package entropy

import "math/rand"

// Source wraps a seeded pseudo-random stream.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a source that is deterministic for a given seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Normal returns a standard-normal sample (mean 0, stddev 1).
func (s *Source) Normal() float64 {
	return s.rng.NormFloat64()
}

// Float returns a uniform sample in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Range returns a uniform sample in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Draws bundles the samples one price recomputation consumes. Bootstrap is a
// raw uniform in [0, 1); the calculator maps it into its opening-price range.
type Draws struct {
	Normal    float64
	Bootstrap float64
}

// Draw consumes one set of per-character samples in a fixed order.
func (s *Source) Draw() Draws {
	return Draws{
		Normal:    s.Normal(),
		Bootstrap: s.Float(),
	}
}
