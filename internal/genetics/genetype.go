package genetics

import (
	"fmt"
	"strings"
)

// GeneType classifies which allele model backs a Gene.
type GeneType uint8

const (
	Mendelian GeneType = iota
	Bloodlike
	Quadruplet
)

var geneTypeNames = [...]string{
	Mendelian:  "mendelian",
	Bloodlike:  "bloodlike",
	Quadruplet: "quadruplet",
}

// Population-frequency tables used by RandomGene. Each entry counts the
// allele combinations that produce the state with the same ordinal.
var (
	mendelianWeights  = []int{1, 2, 1}
	bloodlikeWeights  = []int{1, 2, 1, 2, 2, 1}
	quadrupletWeights = []int{1, 4, 6, 4, 1}
)

func (t GeneType) Valid() bool {
	return t <= Quadruplet
}

func (t GeneType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("genetype(%d)", uint8(t))
	}
	return geneTypeNames[t]
}

// ParseGeneType accepts the lower-case names produced by String.
func ParseGeneType(s string) (GeneType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range geneTypeNames {
		if candidate == name {
			return GeneType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gene type %q", s)
}

func (t GeneType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown gene type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *GeneType) UnmarshalText(text []byte) error {
	parsed, err := ParseGeneType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// stateCount is the size of the state domain for the gene type.
func (t GeneType) stateCount() int {
	switch t {
	case Mendelian:
		return len(mendelianWeights)
	case Bloodlike:
		return len(bloodlikeWeights)
	case Quadruplet:
		return len(quadrupletWeights)
	default:
		panic(fmt.Sprintf("genetics: unknown gene type %d", uint8(t)))
	}
}

// RandomGene draws a gene of this type using the fixed population-frequency
// table for the model: Mendelian 1:2:1, Bloodlike 1:2:1:2:2:1 and
// Quadruplet 1:4:6:4:1. rng must not be nil.
func (t GeneType) RandomGene(rng Source) Gene {
	switch t {
	case Mendelian:
		return Gene{kind: t, state: uint8(weightedChoice(rng, mendelianWeights))}
	case Bloodlike:
		return Gene{kind: t, state: uint8(weightedChoice(rng, bloodlikeWeights))}
	case Quadruplet:
		return Gene{kind: t, state: uint8(weightedChoice(rng, quadrupletWeights))}
	default:
		panic(fmt.Sprintf("genetics: unknown gene type %d", uint8(t)))
	}
}
