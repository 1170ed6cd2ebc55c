package genetics

import (
	"fmt"
	"strings"
)

// GenePrint is the ordered gene-type schema a genotype conforms to.
type GenePrint []GeneType

// UniformPrint repeats t n times.
func UniformPrint(t GeneType, n int) GenePrint {
	schema := make(GenePrint, n)
	for i := range schema {
		schema[i] = t
	}
	return schema
}

func (p GenePrint) Equal(other GenePrint) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (p GenePrint) Clone() GenePrint {
	return append(GenePrint(nil), p...)
}

// AllMendelian reports whether genotypes of this print have a lookup index.
func (p GenePrint) AllMendelian() bool {
	for _, t := range p {
		if t != Mendelian {
			return false
		}
	}
	return true
}

func (p GenePrint) String() string {
	names := make([]string, len(p))
	for i, t := range p {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ",") + "]"
}

// ParseGenePrint reads a comma separated list of gene type names.
func ParseGenePrint(s string) (GenePrint, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "["), "]"))
	if s == "" {
		return GenePrint{}, nil
	}
	parts := strings.Split(s, ",")
	schema := make(GenePrint, 0, len(parts))
	for _, part := range parts {
		t, err := ParseGeneType(part)
		if err != nil {
			return nil, err
		}
		schema = append(schema, t)
	}
	return schema, nil
}

// Genotype is an immutable, fully populated sequence of genes. Its gene-print
// is fixed at construction.
type Genotype struct {
	genes []Gene
}

// NewGenotype copies genes into a new genotype. Schema conformance is the
// caller's responsibility; use NewGenotypeFor to have it checked.
func NewGenotype(genes ...Gene) Genotype {
	return Genotype{genes: append([]Gene(nil), genes...)}
}

// NewGenotypeFor builds a genotype and checks it against schema.
func NewGenotypeFor(schema GenePrint, genes ...Gene) (Genotype, error) {
	g := NewGenotype(genes...)
	if !g.GenePrint().Equal(schema) {
		return Genotype{}, fmt.Errorf("%w: genes %s do not match %s", ErrSchemaMismatch, g.GenePrint(), schema)
	}
	return g, nil
}

// RandomGenotype draws one weighted random gene per position of schema.
func RandomGenotype(rng Source, schema GenePrint) (Genotype, error) {
	if rng == nil {
		return Genotype{}, ErrNilSource
	}
	genes := make([]Gene, len(schema))
	for i, t := range schema {
		if !t.Valid() {
			return Genotype{}, fmt.Errorf("%w: position %d has unknown gene type %d", ErrInvalidState, i, uint8(t))
		}
		genes[i] = t.RandomGene(rng)
	}
	return Genotype{genes: genes}, nil
}

func (g Genotype) Len() int {
	return len(g.genes)
}

// Gene returns the gene at position i and panics when i is out of range.
func (g Genotype) Gene(i int) Gene {
	return g.genes[i]
}

// Genes returns a copy of the gene sequence.
func (g Genotype) Genes() []Gene {
	return append([]Gene(nil), g.genes...)
}

func (g Genotype) GenePrint() GenePrint {
	schema := make(GenePrint, len(g.genes))
	for i, gene := range g.genes {
		schema[i] = gene.kind
	}
	return schema
}

func (g Genotype) Equal(other Genotype) bool {
	if len(g.genes) != len(other.genes) {
		return false
	}
	for i := range g.genes {
		if g.genes[i] != other.genes[i] {
			return false
		}
	}
	return true
}

// CanCross reports whether the two gene-prints are element-wise identical.
// Gene values are not inspected.
func CanCross(a, b Genotype) bool {
	if len(a.genes) != len(b.genes) {
		return false
	}
	for i := range a.genes {
		if a.genes[i].kind != b.genes[i].kind {
			return false
		}
	}
	return true
}

// Cross produces a child genotype by applying each position's crossing rule.
// Parents are never modified.
func Cross(rng Source, a, b Genotype) (Genotype, error) {
	if rng == nil {
		return Genotype{}, ErrNilSource
	}
	if !CanCross(a, b) {
		return Genotype{}, fmt.Errorf("%w: cannot cross %s with %s", ErrSchemaMismatch, a.GenePrint(), b.GenePrint())
	}
	genes := make([]Gene, len(a.genes))
	for i := range a.genes {
		child, err := CrossGenes(rng, a.genes[i], b.genes[i])
		if err != nil {
			panic(fmt.Sprintf("genetics: position %d: %v", i, err))
		}
		genes[i] = child
	}
	return Genotype{genes: genes}, nil
}
