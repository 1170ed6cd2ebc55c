package species

import (
	"errors"
	"fmt"
	"strings"

	"bloomcross/internal/genetics"
)

var (
	ErrDuplicateSpecies = errors.New("species already registered")
	ErrUnknownSpecies   = errors.New("unknown species")
)

// Species describes one kind of flower: its display name, the trait family
// tag used by phenotype tables, and the gene-print its genotypes follow.
type Species struct {
	Name   string
	Family string
	Kind   string

	genePrint genetics.GenePrint
	seeds     []genetics.Genotype
}

// New validates that every seed conforms to genePrint.
func New(name, family, kind string, genePrint genetics.GenePrint, seeds ...genetics.Genotype) (Species, error) {
	name = strings.TrimSpace(name)
	family = strings.ToLower(strings.TrimSpace(family))
	kind = strings.ToLower(strings.TrimSpace(kind))
	if name == "" || family == "" || kind == "" {
		return Species{}, fmt.Errorf("species name, family and kind are required")
	}
	for _, t := range genePrint {
		if !t.Valid() {
			return Species{}, fmt.Errorf("species %s: %w: unknown gene type %d", name, genetics.ErrInvalidState, uint8(t))
		}
	}
	s := Species{
		Name:      name,
		Family:    family,
		Kind:      kind,
		genePrint: genePrint.Clone(),
		seeds:     append([]genetics.Genotype(nil), seeds...),
	}
	for i, seed := range seeds {
		if !s.Conforms(seed) {
			return Species{}, fmt.Errorf("species %s seed %d (%s): %w: want %s", name, i, seed, genetics.ErrSchemaMismatch, genePrint)
		}
	}
	return s, nil
}

func mustNew(name, family, kind string, genePrint genetics.GenePrint, seeds ...string) Species {
	genotypes := make([]genetics.Genotype, len(seeds))
	for i, seed := range seeds {
		g, err := genetics.ParseGenotype(seed)
		if err != nil {
			panic(err)
		}
		genotypes[i] = g
	}
	s, err := New(name, family, kind, genePrint, genotypes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Key identifies the species within a catalog, e.g. acnh/rose.
func (s Species) Key() string {
	return s.Family + "/" + s.Kind
}

// GenePrint returns a copy of the species schema.
func (s Species) GenePrint() genetics.GenePrint {
	return s.genePrint.Clone()
}

func (s Species) Seeds() []genetics.Genotype {
	return append([]genetics.Genotype(nil), s.seeds...)
}

func (s Species) Conforms(g genetics.Genotype) bool {
	return g.GenePrint().Equal(s.genePrint)
}

func (s Species) NewGenotype(genes ...genetics.Gene) (genetics.Genotype, error) {
	return genetics.NewGenotypeFor(s.genePrint, genes...)
}

// ParseGenotype reads notation and checks it against the species schema.
func (s Species) ParseGenotype(notation string) (genetics.Genotype, error) {
	g, err := genetics.ParseGenotype(notation)
	if err != nil {
		return genetics.Genotype{}, err
	}
	if !s.Conforms(g) {
		return genetics.Genotype{}, fmt.Errorf("%s: %w: %s does not match %s", s.Key(), genetics.ErrSchemaMismatch, g.GenePrint(), s.genePrint)
	}
	return g, nil
}

func (s Species) Random(rng genetics.Source) (genetics.Genotype, error) {
	return genetics.RandomGenotype(rng, s.genePrint)
}
