package species

import (
	"fmt"
	"strings"

	"bloomcross/internal/genetics"
)

// Catalog is an ordered registry of species. It is not safe for concurrent
// registration; build it before sharing.
type Catalog struct {
	order []string
	byKey map[string]Species
}

func NewCatalog(species ...Species) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string]Species, len(species))}
	for _, s := range species {
		if err := c.Register(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Builtin returns the Animal Crossing: New Horizons flowers with their shop
// seed genotypes.
func Builtin() *Catalog {
	c, err := NewCatalog(
		mustNew("Rose (acnh)", "acnh", "rose", genetics.UniformPrint(genetics.Mendelian, 4),
			"2-0-0-1", "0-0-1-0", "0-2-0-0"),
		mustNew("Mum (acnh)", "acnh", "mum", genetics.UniformPrint(genetics.Mendelian, 3),
			"2-0-0", "0-0-1", "0-2-0"),
		mustNew("Hyacinth (acnh)", "acnh", "hyacinth", genetics.UniformPrint(genetics.Mendelian, 3),
			"2-0-1", "0-0-1", "0-2-0"),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Register(s Species) error {
	key := s.Key()
	if _, exists := c.byKey[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSpecies, key)
	}
	c.byKey[key] = s
	c.order = append(c.order, key)
	return nil
}

// Get resolves a species by key (acnh/rose), by kind when it is unique
// (rose), or by display name.
func (c *Catalog) Get(ref string) (Species, bool) {
	ref = strings.TrimSpace(ref)
	if s, ok := c.byKey[strings.ToLower(ref)]; ok {
		return s, true
	}
	var match Species
	matches := 0
	for _, key := range c.order {
		s := c.byKey[key]
		if strings.EqualFold(s.Kind, ref) || strings.EqualFold(s.Name, ref) {
			match = s
			matches++
		}
	}
	return match, matches == 1
}

// Lookup is Get returning ErrUnknownSpecies for missing or ambiguous refs.
func (c *Catalog) Lookup(ref string) (Species, error) {
	s, ok := c.Get(ref)
	if !ok {
		return Species{}, fmt.Errorf("%w: %s", ErrUnknownSpecies, ref)
	}
	return s, nil
}

func (c *Catalog) List() []Species {
	out := make([]Species, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.byKey[key])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// SeedGrid lays out each species' seeds as one row, in registration order.
func (c *Catalog) SeedGrid() [][]genetics.Genotype {
	grid := make([][]genetics.Genotype, 0, len(c.order))
	for _, key := range c.order {
		grid = append(grid, c.byKey[key].Seeds())
	}
	return grid
}
