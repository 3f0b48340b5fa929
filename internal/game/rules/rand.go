package rules

import "math/rand"

// Rand is the injected randomness source for shuffles and Draw! checks.
// It is the only non-deterministic input to the engine; tests construct a
// seeded instance to replay exact games.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type seededRand struct {
	r *rand.Rand
}

// NewRand returns a Rand backed by math/rand with the given seed.
func NewRand(seed int64) Rand {
	return &seededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRand) Intn(n int) int { return s.r.Intn(n) }

func (s *seededRand) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }
