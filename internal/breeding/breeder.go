package breeding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bloomcross/internal/genetics"
	"bloomcross/internal/model"
	"bloomcross/internal/species"
	"bloomcross/internal/storage"
)

var ErrSpeciesMismatch = errors.New("flowers belong to different species")

// Breeder turns genotypes into persisted-ready flower records and crosses
// pairs of flowers of the same species.
type Breeder struct {
	catalog *species.Catalog
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

type Option func(*Breeder)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Breeder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithIDSource replaces the uuid generator, mainly for tests.
func WithIDSource(newID func() string) Option {
	return func(b *Breeder) {
		if newID != nil {
			b.newID = newID
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Breeder) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBreeder(catalog *species.Catalog, opts ...Option) *Breeder {
	b := &Breeder{
		catalog: catalog,
		logger:  slog.Default(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breeder) Catalog() *species.Catalog {
	return b.catalog
}

// Plant wraps a genotype of the given species in a generation-0 flower.
func (b *Breeder) Plant(ref string, g genetics.Genotype) (model.Flower, error) {
	s, err := b.catalog.Lookup(ref)
	if err != nil {
		return model.Flower{}, err
	}
	if !s.Conforms(g) {
		return model.Flower{}, fmt.Errorf("%s: %w: %s", s.Key(), genetics.ErrSchemaMismatch, g.GenePrint())
	}
	return model.Flower{
		VersionedRecord: storage.CurrentVersion(),
		ID:              b.newID(),
		Species:         s.Key(),
		Genotype:        g,
		PlantedAt:       b.now().UTC(),
	}, nil
}

// PlantRandom plants a freshly generated genotype of the species.
func (b *Breeder) PlantRandom(rng genetics.Source, ref string) (model.Flower, error) {
	s, err := b.catalog.Lookup(ref)
	if err != nil {
		return model.Flower{}, err
	}
	g, err := s.Random(rng)
	if err != nil {
		return model.Flower{}, err
	}
	return b.Plant(s.Key(), g)
}

// Breed crosses two flowers. The child's generation is one past the older
// parent's.
func (b *Breeder) Breed(ctx context.Context, rng genetics.Source, mother, father model.Flower) (model.Flower, error) {
	if err := ctx.Err(); err != nil {
		return model.Flower{}, err
	}
	if mother.Species != father.Species {
		return model.Flower{}, fmt.Errorf("%w: %s and %s", ErrSpeciesMismatch, mother.Species, father.Species)
	}
	s, err := b.catalog.Lookup(mother.Species)
	if err != nil {
		return model.Flower{}, err
	}
	for _, parent := range []model.Flower{mother, father} {
		if !s.Conforms(parent.Genotype) {
			return model.Flower{}, fmt.Errorf("flower %s: %w: %s is not a %s", parent.ID, genetics.ErrSchemaMismatch, parent.Genotype, s.Key())
		}
	}

	child, err := genetics.Cross(rng, mother.Genotype, father.Genotype)
	if err != nil {
		return model.Flower{}, err
	}

	generation := mother.Generation
	if father.Generation > generation {
		generation = father.Generation
	}
	flower := model.Flower{
		VersionedRecord: storage.CurrentVersion(),
		ID:              b.newID(),
		Species:         s.Key(),
		Genotype:        child,
		ParentIDs:       []string{mother.ID, father.ID},
		Generation:      generation + 1,
		PlantedAt:       b.now().UTC(),
	}
	b.logger.Debug("crossed flowers",
		"species", s.Key(),
		"mother", mother.Genotype.String(),
		"father", father.Genotype.String(),
		"child", child.String(),
		"generation", flower.Generation,
	)
	return flower, nil
}

// BreedRound draws count parent pairs from pool with selector and breeds
// each pair once.
func (b *Breeder) BreedRound(ctx context.Context, rng genetics.Source, pool []model.Flower, selector Selector, count int) ([]model.Flower, error) {
	if selector == nil {
		return nil, errors.New("selector is required")
	}
	if count <= 0 {
		return nil, fmt.Errorf("invalid offspring count: %d", count)
	}
	children := make([]model.Flower, 0, count)
	for i := 0; i < count; i++ {
		mother, father, err := selector.PickPair(rng, pool)
		if err != nil {
			return nil, err
		}
		child, err := b.Breed(ctx, rng, mother, father)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	b.logger.Info("bred round", "selector", selector.Name(), "pool", len(pool), "children", len(children))
	return children, nil
}
