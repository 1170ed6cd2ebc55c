package genetics

import (
	"fmt"
	"sort"
)

// MaxOutcomes bounds the number of distinct offspring Outcomes will enumerate.
const MaxOutcomes = 1 << 16

// Outcome is one possible offspring genotype and its probability.
type Outcome struct {
	Genotype    Genotype
	Probability float64
}

// Outcomes returns the exact offspring distribution of Cross(a, b), sorted
// by descending probability and then by notation.
func Outcomes(a, b Genotype) ([]Outcome, error) {
	if !CanCross(a, b) {
		return nil, fmt.Errorf("%w: cannot cross %s with %s", ErrSchemaMismatch, a.GenePrint(), b.GenePrint())
	}

	perPosition := make([][]GeneOutcome, len(a.genes))
	space := 1
	for i := range a.genes {
		outcomes, err := GeneOutcomes(a.genes[i], b.genes[i])
		if err != nil {
			panic(fmt.Sprintf("genetics: position %d: %v", i, err))
		}
		perPosition[i] = outcomes
		space *= len(outcomes)
		if space > MaxOutcomes {
			return nil, fmt.Errorf("%w: more than %d offspring", ErrOutcomeSpace, MaxOutcomes)
		}
	}

	type partial struct {
		genes []Gene
		p     float64
	}
	current := []partial{{genes: nil, p: 1}}
	for _, options := range perPosition {
		next := make([]partial, 0, len(current)*len(options))
		for _, prefix := range current {
			for _, option := range options {
				genes := make([]Gene, len(prefix.genes), len(prefix.genes)+1)
				copy(genes, prefix.genes)
				next = append(next, partial{genes: append(genes, option.Gene), p: prefix.p * option.Probability})
			}
		}
		current = next
	}

	out := make([]Outcome, 0, len(current))
	for _, c := range current {
		out = append(out, Outcome{Genotype: Genotype{genes: c.genes}, Probability: c.p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Genotype.String() < out[j].Genotype.String()
	})
	return out, nil
}
