package genetics

import (
	"fmt"
	"strings"
)

const notationSeparator = "-"

var bloodTokens = [...]string{
	HomozygousA:   "AA",
	HeterozygousA: "AO",
	HomozygousB:   "BB",
	HeterozygousB: "BO",
	TypeAB:        "AB",
	TypeO:         "OO",
}

// Token is the compact notation of a single gene: 0, 1 or 2 for Mendelian
// genes, an allele pair such as AO for Bloodlike genes and q0 to q4 for
// Quadruplet genes.
func (g Gene) Token() string {
	switch g.kind {
	case Mendelian:
		return fmt.Sprintf("%d", g.state)
	case Bloodlike:
		return bloodTokens[g.state]
	case Quadruplet:
		return fmt.Sprintf("q%d", g.state)
	default:
		return "?"
	}
}

// ParseGene reads a single gene token. Bloodlike pairs are accepted in
// either order.
func ParseGene(token string) (Gene, error) {
	token = strings.TrimSpace(token)
	switch {
	case len(token) == 1 && token[0] >= '0' && token[0] <= '2':
		return MendelianGene(MendelianState(token[0] - '0')), nil
	case len(token) == 2 && (token[0] == 'q' || token[0] == 'Q') && token[1] >= '0' && token[1] <= '4':
		return QuadrupletGene(DominanceLevel(token[1] - '0')), nil
	case len(token) == 2:
		upper := strings.ToUpper(token)
		reversed := string([]byte{upper[1], upper[0]})
		for state, candidate := range bloodTokens {
			if candidate == upper || candidate == reversed {
				return BloodlikeGene(BloodType(state)), nil
			}
		}
	}
	return Gene{}, fmt.Errorf("%w: gene token %q", ErrNotation, token)
}

// String renders the genotype as gene tokens joined by "-", e.g. 2-0-0-1.
func (g Genotype) String() string {
	tokens := make([]string, len(g.genes))
	for i, gene := range g.genes {
		tokens[i] = gene.Token()
	}
	return strings.Join(tokens, notationSeparator)
}

// ParseGenotype is the inverse of Genotype.String. The empty string is the
// empty genotype.
func ParseGenotype(s string) (Genotype, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Genotype{}, nil
	}
	tokens := strings.Split(s, notationSeparator)
	genes := make([]Gene, len(tokens))
	for i, token := range tokens {
		gene, err := ParseGene(token)
		if err != nil {
			return Genotype{}, fmt.Errorf("position %d: %w", i, err)
		}
		genes[i] = gene
	}
	return Genotype{genes: genes}, nil
}

func (g Genotype) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Genotype) UnmarshalText(text []byte) error {
	parsed, err := ParseGenotype(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
