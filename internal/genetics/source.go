package genetics

import "errors"

// Source is the random source consumed by crossing and random generation.
// *math/rand.Rand satisfies it. Implementations are not required to be safe
// for concurrent use; concurrent callers should each own a Source.
type Source interface {
	Intn(n int) int
}

var (
	ErrSchemaMismatch  = errors.New("gene-print mismatch")
	ErrVariantMismatch = errors.New("gene variant mismatch")
	ErrInvalidState    = errors.New("invalid gene state")
	ErrIndexRange      = errors.New("lookup index out of range")
	ErrNilSource       = errors.New("random source is required")
	ErrNotation        = errors.New("invalid genotype notation")
	ErrOutcomeSpace    = errors.New("outcome space too large")
)

// weightedChoice returns an index into weights drawn proportionally to its weight.
func weightedChoice(rng Source, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
