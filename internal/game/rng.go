package game

import (
	"math/rand"
	"time"
)

// RNG is the single source of randomness for a battle: shuffles, intent
// rolls and random targeting all draw from it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// NewRNG returns a seeded generator. Seed 0 picks a time-based seed.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// shuffleInPlace is an unbiased Fisher–Yates shuffle driven by rng.
func shuffleInPlace[T any](rng RNG, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
