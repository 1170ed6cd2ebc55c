package breeding

import (
	"errors"
	"fmt"

	"bloomcross/internal/genetics"
	"bloomcross/internal/model"
)

var ErrNoCompatiblePair = errors.New("no compatible parent pair")

// Selector chooses a parent pair from a pool of flowers.
type Selector interface {
	Name() string
	PickPair(rng genetics.Source, pool []model.Flower) (model.Flower, model.Flower, error)
}

// RandomSelector picks both parents uniformly and allows self-pollination.
// The pair is redrawn until it is cross-compatible.
type RandomSelector struct {
	MaxAttempts int
}

func (RandomSelector) Name() string {
	return "random"
}

func (s RandomSelector) PickPair(rng genetics.Source, pool []model.Flower) (model.Flower, model.Flower, error) {
	return pickPair(rng, pool, s.MaxAttempts, true)
}

// DistinctSelector never pairs a flower with itself.
type DistinctSelector struct {
	MaxAttempts int
}

func (DistinctSelector) Name() string {
	return "distinct"
}

func (s DistinctSelector) PickPair(rng genetics.Source, pool []model.Flower) (model.Flower, model.Flower, error) {
	return pickPair(rng, pool, s.MaxAttempts, false)
}

func pickPair(rng genetics.Source, pool []model.Flower, maxAttempts int, allowSelf bool) (model.Flower, model.Flower, error) {
	if rng == nil {
		return model.Flower{}, model.Flower{}, genetics.ErrNilSource
	}
	minimum := 2
	if allowSelf {
		minimum = 1
	}
	if len(pool) < minimum {
		return model.Flower{}, model.Flower{}, fmt.Errorf("pool too small: %d flowers", len(pool))
	}
	if maxAttempts <= 0 {
		maxAttempts = 4 * len(pool) * len(pool)
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		i := rng.Intn(len(pool))
		j := rng.Intn(len(pool))
		if i == j && !allowSelf {
			continue
		}
		if pool[i].Species != pool[j].Species || !genetics.CanCross(pool[i].Genotype, pool[j].Genotype) {
			continue
		}
		return pool[i], pool[j], nil
	}
	return model.Flower{}, model.Flower{}, fmt.Errorf("%w after %d attempts", ErrNoCompatiblePair, maxAttempts)
}

// SelectorByName resolves the CLI/API selector names.
func SelectorByName(name string) (Selector, error) {
	switch name {
	case "", "random":
		return RandomSelector{}, nil
	case "distinct":
		return DistinctSelector{}, nil
	default:
		return nil, fmt.Errorf("unsupported selector: %s", name)
	}
}
