package genetics

import (
	"fmt"
	"sort"
)

// Gene is one heritable slot. It is a closed sum over the three allele
// models: the type tag selects which state domain the value belongs to.
// The zero Gene is a homozygous-recessive Mendelian gene.
type Gene struct {
	kind  GeneType
	state uint8
}

// NewGene builds a gene from a type tag and the ordinal of its state.
func NewGene(t GeneType, state int) (Gene, error) {
	if !t.Valid() {
		return Gene{}, fmt.Errorf("%w: unknown gene type %d", ErrInvalidState, uint8(t))
	}
	if state < 0 || state >= t.stateCount() {
		return Gene{}, fmt.Errorf("%w: %s state %d", ErrInvalidState, t, state)
	}
	return Gene{kind: t, state: uint8(state)}, nil
}

// MendelianGene panics if s is out of range; use NewGene for unchecked input.
func MendelianGene(s MendelianState) Gene {
	if !s.Valid() {
		panic(fmt.Sprintf("genetics: invalid mendelian state %d", uint8(s)))
	}
	return Gene{kind: Mendelian, state: uint8(s)}
}

// BloodlikeGene panics if t is out of range; use NewGene for unchecked input.
func BloodlikeGene(t BloodType) Gene {
	if !t.Valid() {
		panic(fmt.Sprintf("genetics: invalid blood type %d", uint8(t)))
	}
	return Gene{kind: Bloodlike, state: uint8(t)}
}

// QuadrupletGene panics if l is out of range; use NewGene for unchecked input.
func QuadrupletGene(l DominanceLevel) Gene {
	if !l.Valid() {
		panic(fmt.Sprintf("genetics: invalid dominance level %d", uint8(l)))
	}
	return Gene{kind: Quadruplet, state: uint8(l)}
}

func (g Gene) Type() GeneType {
	return g.kind
}

// Ordinal is the position of the state within its model's domain.
func (g Gene) Ordinal() int {
	return int(g.state)
}

func (g Gene) Mendelian() (MendelianState, bool) {
	if g.kind != Mendelian {
		return 0, false
	}
	return MendelianState(g.state), true
}

func (g Gene) Bloodlike() (BloodType, bool) {
	if g.kind != Bloodlike {
		return 0, false
	}
	return BloodType(g.state), true
}

func (g Gene) Quadruplet() (DominanceLevel, bool) {
	if g.kind != Quadruplet {
		return 0, false
	}
	return DominanceLevel(g.state), true
}

// Describe returns a readable label such as "mendelian:heterozygous".
func (g Gene) Describe() string {
	switch g.kind {
	case Mendelian:
		return g.kind.String() + ":" + MendelianState(g.state).String()
	case Bloodlike:
		return g.kind.String() + ":" + BloodType(g.state).String()
	case Quadruplet:
		return g.kind.String() + ":" + DominanceLevel(g.state).String()
	default:
		return fmt.Sprintf("gene(%d:%d)", g.kind, g.state)
	}
}

// CrossGenes combines one randomly chosen allele contribution from each
// parent. Parents of different variants yield ErrVariantMismatch.
func CrossGenes(rng Source, a, b Gene) (Gene, error) {
	if rng == nil {
		return Gene{}, ErrNilSource
	}
	if a.kind != b.kind {
		return Gene{}, fmt.Errorf("%w: %s with %s", ErrVariantMismatch, a.kind, b.kind)
	}
	switch a.kind {
	case Mendelian:
		return MendelianGene(crossMendelian(rng, MendelianState(a.state), MendelianState(b.state))), nil
	case Bloodlike:
		return BloodlikeGene(crossBloodlike(rng, BloodType(a.state), BloodType(b.state))), nil
	case Quadruplet:
		return QuadrupletGene(crossQuadruplet(rng, DominanceLevel(a.state), DominanceLevel(b.state))), nil
	default:
		panic(fmt.Sprintf("genetics: unknown gene type %d", uint8(a.kind)))
	}
}

// GeneOutcome is one possible offspring gene and its probability.
type GeneOutcome struct {
	Gene        Gene
	Probability float64
}

// GeneOutcomes enumerates every allele draw CrossGenes can make and returns
// the exact offspring distribution, ordered by state ordinal.
func GeneOutcomes(a, b Gene) ([]GeneOutcome, error) {
	if a.kind != b.kind {
		return nil, fmt.Errorf("%w: %s with %s", ErrVariantMismatch, a.kind, b.kind)
	}
	switch a.kind {
	case Mendelian:
		return mendelianOutcomes(MendelianState(a.state), MendelianState(b.state)), nil
	case Bloodlike:
		return bloodlikeOutcomes(BloodType(a.state), BloodType(b.state)), nil
	case Quadruplet:
		return quadrupletOutcomes(DominanceLevel(a.state), DominanceLevel(b.state)), nil
	default:
		panic(fmt.Sprintf("genetics: unknown gene type %d", uint8(a.kind)))
	}
}

func mergeGeneOutcomes(outcomes []GeneOutcome) []GeneOutcome {
	byGene := make(map[Gene]float64, len(outcomes))
	for _, outcome := range outcomes {
		byGene[outcome.Gene] += outcome.Probability
	}
	merged := make([]GeneOutcome, 0, len(byGene))
	for gene, p := range byGene {
		merged = append(merged, GeneOutcome{Gene: gene, Probability: p})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Gene.state < merged[j].Gene.state
	})
	return merged
}
