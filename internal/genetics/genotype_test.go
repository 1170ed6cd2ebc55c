package genetics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, notation string) Genotype {
	t.Helper()
	g, err := ParseGenotype(notation)
	require.NoError(t, err)
	return g
}

func TestCrossPreservesGenePrint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prints := []GenePrint{
		UniformPrint(Mendelian, 4),
		{Bloodlike, Mendelian, Quadruplet},
		{Quadruplet, Quadruplet},
		{},
	}
	for _, schema := range prints {
		for i := 0; i < 50; i++ {
			a, err := RandomGenotype(rng, schema)
			require.NoError(t, err)
			b, err := RandomGenotype(rng, schema)
			require.NoError(t, err)

			child, err := Cross(rng, a, b)
			require.NoError(t, err)
			assert.True(t, child.GenePrint().Equal(a.GenePrint()))
			assert.True(t, child.GenePrint().Equal(schema))
		}
	}
}

func TestCrossDoesNotMutateParents(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := mustParse(t, "2-0-AO-q3")
	b := mustParse(t, "0-1-BO-q1")
	aBefore, bBefore := a.String(), b.String()

	for i := 0; i < 20; i++ {
		_, err := Cross(rng, a, b)
		require.NoError(t, err)
	}
	assert.Equal(t, aBefore, a.String())
	assert.Equal(t, bBefore, b.String())
}

func TestCrossFixedMendelianGenomes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := mustParse(t, "0-0-2-2")
	b := mustParse(t, "2-0-2-0")
	want := mustParse(t, "1-0-2-1")
	for i := 0; i < 50; i++ {
		child, err := Cross(rng, a, b)
		require.NoError(t, err)
		assert.True(t, want.Equal(child), "got %s", child)
	}
}

func TestCrossRejectsSchemaMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct {
		name string
		a, b string
	}{
		{name: "length", a: "0-1-2", b: "0-1"},
		{name: "gene type", a: "0-1-2", b: "0-AB-2"},
		{name: "quadruplet against mendelian", a: "q2", b: "2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := mustParse(t, tc.a), mustParse(t, tc.b)
			assert.False(t, CanCross(a, b))
			_, err := Cross(rng, a, b)
			require.ErrorIs(t, err, ErrSchemaMismatch)
			_, err = Outcomes(a, b)
			require.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}

	_, err := Cross(nil, mustParse(t, "0"), mustParse(t, "1"))
	require.ErrorIs(t, err, ErrNilSource)
}

func TestCanCrossIsSymmetric(t *testing.T) {
	genotypes := []Genotype{
		mustParse(t, ""),
		mustParse(t, "0"),
		mustParse(t, "2-1"),
		mustParse(t, "AB-1"),
		mustParse(t, "OO-0"),
		mustParse(t, "q4-0"),
		mustParse(t, "0-0-0"),
	}
	for _, a := range genotypes {
		for _, b := range genotypes {
			assert.Equal(t, CanCross(a, b), CanCross(b, a), "%s / %s", a, b)
		}
	}
	assert.True(t, CanCross(mustParse(t, "AB-1"), mustParse(t, "OO-0")))
	assert.False(t, CanCross(mustParse(t, "AB-1"), mustParse(t, "q4-0")))
}

func TestNewGenotypeForValidatesSchema(t *testing.T) {
	schema := GenePrint{Mendelian, Bloodlike}
	g, err := NewGenotypeFor(schema, MendelianGene(Heterozygous), BloodlikeGene(TypeO))
	require.NoError(t, err)
	assert.Equal(t, "1-OO", g.String())

	_, err = NewGenotypeFor(schema, MendelianGene(Heterozygous))
	require.ErrorIs(t, err, ErrSchemaMismatch)
	_, err = NewGenotypeFor(schema, BloodlikeGene(TypeO), MendelianGene(Heterozygous))
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestGenotypeOwnsItsGenes(t *testing.T) {
	genes := []Gene{MendelianGene(HomozygousDominant), MendelianGene(HomozygousRecessive)}
	g := NewGenotype(genes...)
	genes[0] = MendelianGene(Heterozygous)
	assert.Equal(t, MendelianGene(HomozygousDominant), g.Gene(0))

	out := g.Genes()
	out[1] = MendelianGene(Heterozygous)
	assert.Equal(t, MendelianGene(HomozygousRecessive), g.Gene(1))
}

func TestRandomGenotypeConformsToSchema(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	schema := GenePrint{Quadruplet, Mendelian, Bloodlike, Mendelian}
	for i := 0; i < 100; i++ {
		g, err := RandomGenotype(rng, schema)
		require.NoError(t, err)
		assert.True(t, g.GenePrint().Equal(schema))
	}

	_, err := RandomGenotype(nil, schema)
	require.ErrorIs(t, err, ErrNilSource)
	_, err = RandomGenotype(rng, GenePrint{Mendelian, GeneType(7)})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestGenePrintParseAndString(t *testing.T) {
	schema := GenePrint{Mendelian, Bloodlike, Quadruplet}
	assert.Equal(t, "[mendelian,bloodlike,quadruplet]", schema.String())

	parsed, err := ParseGenePrint(schema.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(schema))

	parsed, err = ParseGenePrint("mendelian, mendelian")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(UniformPrint(Mendelian, 2)))
	assert.True(t, parsed.AllMendelian())
	assert.False(t, schema.AllMendelian())

	empty, err := ParseGenePrint("[]")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseGenePrint("mendelian,diploid")
	require.Error(t, err)
}

func TestOutcomesDistribution(t *testing.T) {
	a := mustParse(t, "1-2-AO")
	b := mustParse(t, "1-0-BO")
	outcomes, err := Outcomes(a, b)
	require.NoError(t, err)
	// 3 mendelian outcomes x 1 forced heterozygous x 4 blood types.
	require.Len(t, outcomes, 12)

	total := 0.0
	for i, outcome := range outcomes {
		total += outcome.Probability
		assert.True(t, outcome.Genotype.GenePrint().Equal(a.GenePrint()))
		assert.Equal(t, MendelianGene(Heterozygous), outcome.Genotype.Gene(1))
		if i > 0 {
			assert.GreaterOrEqual(t, outcomes[i-1].Probability, outcome.Probability)
		}
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	assert.Equal(t, "1-1-AB", outcomes[0].Genotype.String())
	assert.InDelta(t, 0.125, outcomes[0].Probability, 1e-12)
}

func TestOutcomesDeterministicCross(t *testing.T) {
	outcomes, err := Outcomes(mustParse(t, "2-0-q4"), mustParse(t, "0-0-q0"))
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "1-0-q2", outcomes[0].Genotype.String())
	assert.InDelta(t, 1.0, outcomes[0].Probability, 1e-12)
}

func TestOutcomesRejectsHugeSpaces(t *testing.T) {
	parts := make([]Gene, 12)
	for i := range parts {
		parts[i] = QuadrupletGene(QuadBalanced)
	}
	g := NewGenotype(parts...)
	_, err := Outcomes(g, g)
	require.ErrorIs(t, err, ErrOutcomeSpace)
}
