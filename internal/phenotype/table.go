// Package phenotype resolves genotype lookup indices to trait names using
// externally supplied tables. No table contents ship with this module.
package phenotype

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"bloomcross/internal/genetics"
	"bloomcross/internal/species"
)

var (
	ErrUndefinedIndex = errors.New("genotype has no lookup index")
	ErrUnknownTrait   = errors.New("no trait for lookup index")
)

// Table maps a species table key (family_kind, e.g. acnh_rose) to trait
// names ordered by lookup index.
type Table struct {
	traits map[string][]string
}

// TableKey is the document key used for a species.
func TableKey(s species.Species) string {
	return s.Family + "_" + s.Kind
}

func NewTable(traits map[string][]string) *Table {
	t := &Table{traits: make(map[string][]string, len(traits))}
	for key, names := range traits {
		t.traits[key] = append([]string(nil), names...)
	}
	return t
}

// DecodeTable reads a JSON object of table key to trait name array.
func DecodeTable(r io.Reader) (*Table, error) {
	var traits map[string][]string
	if err := json.NewDecoder(r).Decode(&traits); err != nil {
		return nil, fmt.Errorf("decode phenotype table: %w", err)
	}
	return NewTable(traits), nil
}

func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func (t *Table) Lookup(s species.Species, index int) (string, bool) {
	names, ok := t.traits[TableKey(s)]
	if !ok || index < 0 || index >= len(names) {
		return "", false
	}
	return names[index], true
}

// Resolve returns the trait for g. Genotypes with a non-Mendelian gene yield
// ErrUndefinedIndex; callers for such species need their own strategy.
func (t *Table) Resolve(s species.Species, g genetics.Genotype) (string, error) {
	if !s.Conforms(g) {
		return "", fmt.Errorf("%s: %w: %s", s.Key(), genetics.ErrSchemaMismatch, g.GenePrint())
	}
	index, ok := g.LookupIndex()
	if !ok {
		return "", fmt.Errorf("%s %s: %w", s.Key(), g, ErrUndefinedIndex)
	}
	name, ok := t.Lookup(s, index)
	if !ok {
		return "", fmt.Errorf("%s index %d: %w", s.Key(), index, ErrUnknownTrait)
	}
	return name, nil
}

// Check verifies that each all-Mendelian species in the catalog with a
// table entry has exactly one trait per lookup index.
func (t *Table) Check(c *species.Catalog) error {
	var errs []error
	for _, s := range c.List() {
		names, ok := t.traits[TableKey(s)]
		if !ok {
			continue
		}
		schema := s.GenePrint()
		if !schema.AllMendelian() {
			errs = append(errs, fmt.Errorf("%s: table present for non-mendelian species", s.Key()))
			continue
		}
		space, err := genetics.IndexSpace(len(schema))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Key(), err))
			continue
		}
		if len(names) != space {
			errs = append(errs, fmt.Errorf("%s: %d traits, want %d", s.Key(), len(names), space))
		}
	}
	return errors.Join(errs...)
}
