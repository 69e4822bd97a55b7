package greeting

import (
	"errors"
	"math/rand/v2"
)

var ErrEmptyCandidates = errors.New("no candidates to choose from")

// Pick returns a uniformly random element of items.
func Pick[T any](rng *rand.Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCandidates
	}

	return items[rng.IntN(len(items))], nil
}

// PageNumber returns a uniformly random page in [1, total].
func PageNumber(rng *rand.Rand, total int) (int, error) {
	if total < 1 {
		return 0, ErrEmptyCandidates
	}

	return rng.IntN(total) + 1, nil
}

// NewRand seeds a generator from the runtime's entropy source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
