package species

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bloomcross/internal/genetics"
)

var catalogValidate = validator.New(validator.WithRequiredStructEnabled())

type catalogFile struct {
	Species []catalogEntry `yaml:"species" validate:"required,min=1,dive"`
}

type catalogEntry struct {
	Name      string   `yaml:"name" validate:"required"`
	Family    string   `yaml:"family" validate:"required,alphanum"`
	Kind      string   `yaml:"kind" validate:"required,alphanum"`
	GenePrint []string `yaml:"gene_print" validate:"required,min=1,dive,oneof=mendelian bloodlike quadruplet"`
	Seeds     []string `yaml:"seeds" validate:"omitempty,dive,required"`
}

// DecodeCatalog reads a YAML species list:
//
//	species:
//	  - name: Tulip (custom)
//	    family: custom
//	    kind: tulip
//	    gene_print: [bloodlike, mendelian]
//	    seeds: ["AO-0", "BO-2"]
func DecodeCatalog(r io.Reader) ([]Species, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalogValidate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	out := make([]Species, 0, len(file.Species))
	for _, entry := range file.Species {
		genePrint := make(genetics.GenePrint, 0, len(entry.GenePrint))
		for _, name := range entry.GenePrint {
			t, err := genetics.ParseGeneType(name)
			if err != nil {
				return nil, fmt.Errorf("species %s: %w", entry.Name, err)
			}
			genePrint = append(genePrint, t)
		}
		seeds := make([]genetics.Genotype, 0, len(entry.Seeds))
		for _, notation := range entry.Seeds {
			seed, err := genetics.ParseGenotype(notation)
			if err != nil {
				return nil, fmt.Errorf("species %s seed %q: %w", entry.Name, notation, err)
			}
			seeds = append(seeds, seed)
		}
		s, err := New(entry.Name, entry.Family, entry.Kind, genePrint, seeds...)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadCatalogFile decodes path and registers its species on top of base.
// A nil base starts from an empty catalog.
func LoadCatalogFile(path string, base *Catalog) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loaded, err := DecodeCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var existing []Species
	if base != nil {
		existing = base.List()
	}
	return NewCatalog(append(existing, loaded...)...)
}
