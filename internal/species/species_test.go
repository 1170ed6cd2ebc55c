package species

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcross/internal/genetics"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()
	require.Equal(t, 3, c.Len())

	rose, ok := c.Get("acnh/rose")
	require.True(t, ok)
	assert.Equal(t, "Rose (acnh)", rose.Name)
	assert.True(t, rose.GenePrint().Equal(genetics.UniformPrint(genetics.Mendelian, 4)))

	seeds := rose.Seeds()
	require.Len(t, seeds, 3)
	assert.Equal(t, "2-0-0-1", seeds[0].String())

	grid := c.SeedGrid()
	require.Len(t, grid, 3)
	for _, row := range grid {
		assert.Len(t, row, 3)
	}
}

func TestCatalogGetResolvesKindsAndNames(t *testing.T) {
	c := Builtin()
	for _, ref := range []string{"mum", "Mum (acnh)", "ACNH/MUM", " mum "} {
		s, ok := c.Get(ref)
		require.True(t, ok, ref)
		assert.Equal(t, "acnh/mum", s.Key())
	}
	_, err := c.Lookup("orchid")
	require.ErrorIs(t, err, ErrUnknownSpecies)
}

func TestCatalogGetRejectsAmbiguousKind(t *testing.T) {
	c := Builtin()
	other, err := New("Rose (custom)", "custom", "rose", genetics.GenePrint{genetics.Bloodlike})
	require.NoError(t, err)
	require.NoError(t, c.Register(other))

	_, ok := c.Get("rose")
	assert.False(t, ok)
	s, ok := c.Get("custom/rose")
	require.True(t, ok)
	assert.Equal(t, "Rose (custom)", s.Name)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	c := Builtin()
	dup, err := New("Another rose", "acnh", "rose", genetics.UniformPrint(genetics.Mendelian, 4))
	require.NoError(t, err)
	require.ErrorIs(t, c.Register(dup), ErrDuplicateSpecies)
}

func TestNewRejectsNonConformingSeeds(t *testing.T) {
	seed, err := genetics.ParseGenotype("0-1")
	require.NoError(t, err)
	_, err = New("Broken", "custom", "broken", genetics.UniformPrint(genetics.Mendelian, 3), seed)
	require.ErrorIs(t, err, genetics.ErrSchemaMismatch)

	_, err = New("", "custom", "broken", nil)
	require.Error(t, err)
}

func TestSpeciesGenePrintIsACopy(t *testing.T) {
	rose, _ := Builtin().Get("rose")
	schema := rose.GenePrint()
	schema[0] = genetics.Quadruplet
	assert.Equal(t, genetics.Mendelian, rose.GenePrint()[0])
}

func TestSpeciesRandomAndParse(t *testing.T) {
	hyacinth, _ := Builtin().Get("hyacinth")
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 20; i++ {
		g, err := hyacinth.Random(rng)
		require.NoError(t, err)
		assert.True(t, hyacinth.Conforms(g))
	}

	_, err := hyacinth.ParseGenotype("0-1-2-2")
	require.ErrorIs(t, err, genetics.ErrSchemaMismatch)
	g, err := hyacinth.ParseGenotype("0-1-2")
	require.NoError(t, err)
	assert.Equal(t, "0-1-2", g.String())

	_, err = hyacinth.NewGenotype(genetics.MendelianGene(genetics.Heterozygous))
	require.ErrorIs(t, err, genetics.ErrSchemaMismatch)
}

func TestLoadCatalogFile(t *testing.T) {
	c, err := LoadCatalogFile(filepath.Join("testdata", "catalog.yaml"), Builtin())
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	tulip, err := c.Lookup("tulip")
	require.NoError(t, err)
	assert.True(t, tulip.GenePrint().Equal(genetics.GenePrint{genetics.Bloodlike, genetics.Mendelian}))
	assert.Len(t, tulip.Seeds(), 3)

	lily, err := c.Lookup("custom/lily")
	require.NoError(t, err)
	assert.Equal(t, "q4-q0-2", lily.Seeds()[0].String())
}

func TestDecodeCatalogValidation(t *testing.T) {
	cases := map[string]string{
		"empty list": "species: []\n",
		"bad gene type": `species:
  - name: X
    family: custom
    kind: x
    gene_print: [polygenic]
`,
		"missing family": `species:
  - name: X
    kind: x
    gene_print: [mendelian]
`,
		"seed mismatch": `species:
  - name: X
    family: custom
    kind: x
    gene_print: [mendelian]
    seeds: ["AO"]
`,
		"unknown field": `species:
  - name: X
    family: custom
    kind: x
    colour: red
    gene_print: [mendelian]
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCatalog(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadCatalogFileDuplicateAgainstBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	doc := `species:
  - name: Rose again
    family: acnh
    kind: rose
    gene_print: [mendelian]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	_, err := LoadCatalogFile(path, Builtin())
	require.ErrorIs(t, err, ErrDuplicateSpecies)
}
