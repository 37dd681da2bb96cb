package random

// Seeded is a Mulberry32 generator. Two instances built from the same seed
// and driven by the same call sequence yield identical streams.
type Seeded struct {
	state uint32
}

// NewSeeded creates a generator. The seed is reduced modulo 2^32.
func NewSeeded(seed int) *Seeded {
	return &Seeded{state: uint32(seed)}
}

// Next advances the state and returns a float in [0,1).
func (s *Seeded) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

func (s *Seeded) NextInt(min, max int) int { return scaleInt(s.Next(), min, max) }

func (s *Seeded) NextBool(p float64) bool { return s.Next() < p }
