package bloomcross

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloomcross/internal/breeding"
	"bloomcross/internal/genetics"
	"bloomcross/internal/model"
	"bloomcross/internal/phenotype"
	"bloomcross/internal/species"
	"bloomcross/internal/stats"
	"bloomcross/internal/storage"
)

const (
	defaultDBPath     = "bloomcross.db"
	defaultExportsDir = "exports"
	defaultWorkers    = 4
	defaultDraws      = 10000
)

var (
	ErrFlowerNotFound = errors.New("flower not found")
	ErrGardenNotFound = errors.New("garden not found")
	ErrNoPhenotypes   = errors.New("no phenotype table loaded")
)

type Options struct {
	StoreKind      string
	DBPath         string
	CatalogPath    string
	PhenotypesPath string
	ExportsDir     string
	Seed           int64
	Workers        int
	Logger         *slog.Logger
}

// Client is the entry point shared by bloomctl and embedding programs. It is
// safe for concurrent use.
type Client struct {
	store      storage.Store
	catalog    *species.Catalog
	phenotypes *phenotype.Table
	breeder    *breeding.Breeder
	logger     *slog.Logger
	exportsDir string
	workers    int
	seed       int64

	mu  sync.Mutex
	rng *rand.Rand
}

type SpeciesItem struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	GenePrint string   `json:"gene_print"`
	Seeds     []string `json:"seeds"`
}

type PlantRequest struct {
	Species  string
	Genotype string
	Random   bool
}

type OutcomeItem struct {
	Genotype    string  `json:"genotype"`
	Probability float64 `json:"probability"`
	Phenotype   string  `json:"phenotype,omitempty"`
}

// GenotypeInfo describes one genotype of a species.
type GenotypeInfo struct {
	Genotype  string `json:"genotype"`
	GenePrint string `json:"gene_print"`
	Index     *int   `json:"index,omitempty"`
	Phenotype string `json:"phenotype,omitempty"`
}

type SimulateRequest struct {
	Species string
	ParentA string
	ParentB string
	Draws   int
	Workers int
	// Seed overrides the client seed when non-zero.
	Seed int64
}

type BreedGardenRequest struct {
	GardenID string
	Selector string
	Count    int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	catalog := species.Builtin()
	if opts.CatalogPath != "" {
		loaded, err := species.LoadCatalogFile(opts.CatalogPath, catalog)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}
	var table *phenotype.Table
	if opts.PhenotypesPath != "" {
		loaded, err := phenotype.LoadTableFile(opts.PhenotypesPath)
		if err != nil {
			return nil, err
		}
		if err := loaded.Check(catalog); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.PhenotypesPath, err)
		}
		table = loaded
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(context.Background()); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	logger.Debug("client ready", "store", storeKind, "species", catalog.Len(), "phenotypes", table != nil)

	return &Client{
		store:      store,
		catalog:    catalog,
		phenotypes: table,
		breeder:    breeding.NewBreeder(catalog, breeding.WithLogger(logger)),
		logger:     logger,
		exportsDir: exportsDir,
		workers:    workers,
		seed:       opts.Seed,
		rng:        rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Species() []SpeciesItem {
	list := c.catalog.List()
	out := make([]SpeciesItem, 0, len(list))
	for _, s := range list {
		item := SpeciesItem{Key: s.Key(), Name: s.Name, GenePrint: s.GenePrint().String()}
		for _, seed := range s.Seeds() {
			item.Seeds = append(item.Seeds, seed.String())
		}
		out = append(out, item)
	}
	return out
}

// Random draws a genotype of the species without planting it.
func (c *Client) Random(ref string) (genetics.Genotype, error) {
	s, err := c.catalog.Lookup(ref)
	if err != nil {
		return genetics.Genotype{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return s.Random(c.rng)
}

// Describe reports the lookup index of a genotype and, when a table is loaded,
// its trait.
func (c *Client) Describe(ref, notation string) (GenotypeInfo, error) {
	s, err := c.catalog.Lookup(ref)
	if err != nil {
		return GenotypeInfo{}, err
	}
	g, err := s.ParseGenotype(notation)
	if err != nil {
		return GenotypeInfo{}, err
	}
	info := GenotypeInfo{Genotype: g.String(), GenePrint: g.GenePrint().String()}
	if index, ok := g.LookupIndex(); ok {
		info.Index = &index
	}
	if name, err := c.resolve(s, g); err == nil {
		info.Phenotype = name
	}
	return info, nil
}

// CrossGenotypes crosses two genotypes of a species count times without
// storing anything.
func (c *Client) CrossGenotypes(ref, parentA, parentB string, count int) ([]genetics.Genotype, error) {
	_, a, b, err := c.parents(ref, parentA, parentB)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	children := make([]genetics.Genotype, 0, count)
	for i := 0; i < count; i++ {
		child, err := genetics.Cross(c.rng, a, b)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (c *Client) Plant(ctx context.Context, req PlantRequest) (model.Flower, error) {
	s, err := c.catalog.Lookup(req.Species)
	if err != nil {
		return model.Flower{}, err
	}
	var flower model.Flower
	switch {
	case req.Random && req.Genotype != "":
		return model.Flower{}, errors.New("plant takes either a genotype or random, not both")
	case req.Random:
		c.mu.Lock()
		flower, err = c.breeder.PlantRandom(c.rng, s.Key())
		c.mu.Unlock()
	default:
		g, parseErr := s.ParseGenotype(req.Genotype)
		if parseErr != nil {
			return model.Flower{}, parseErr
		}
		flower, err = c.breeder.Plant(s.Key(), g)
	}
	if err != nil {
		return model.Flower{}, err
	}
	if err := c.store.SaveFlower(ctx, flower); err != nil {
		return model.Flower{}, err
	}
	c.logger.Info("planted flower", "id", flower.ID, "species", flower.Species, "genotype", flower.Genotype.String())
	return flower, nil
}

// Cross breeds two stored flowers and stores the child.
func (c *Client) Cross(ctx context.Context, motherID, fatherID string) (model.Flower, error) {
	mother, err := c.Flower(ctx, motherID)
	if err != nil {
		return model.Flower{}, err
	}
	father, err := c.Flower(ctx, fatherID)
	if err != nil {
		return model.Flower{}, err
	}
	c.mu.Lock()
	child, err := c.breeder.Breed(ctx, c.rng, mother, father)
	c.mu.Unlock()
	if err != nil {
		return model.Flower{}, err
	}
	if err := c.store.SaveFlower(ctx, child); err != nil {
		return model.Flower{}, err
	}
	return child, nil
}

func (c *Client) Flower(ctx context.Context, id string) (model.Flower, error) {
	flower, ok, err := c.store.GetFlower(ctx, id)
	if err != nil {
		return model.Flower{}, err
	}
	if !ok {
		return model.Flower{}, fmt.Errorf("%w: %s", ErrFlowerNotFound, id)
	}
	return flower, nil
}

// Flowers lists stored flowers, optionally restricted to one species.
func (c *Client) Flowers(ctx context.Context, ref string) ([]model.Flower, error) {
	key := ""
	if ref != "" {
		s, err := c.catalog.Lookup(ref)
		if err != nil {
			return nil, err
		}
		key = s.Key()
	}
	return c.store.ListFlowers(ctx, key)
}

func (c *Client) Phenotype(ctx context.Context, id string) (string, error) {
	flower, err := c.Flower(ctx, id)
	if err != nil {
		return "", err
	}
	s, err := c.catalog.Lookup(flower.Species)
	if err != nil {
		return "", err
	}
	return c.resolve(s, flower.Genotype)
}

func (c *Client) resolve(s species.Species, g genetics.Genotype) (string, error) {
	if c.phenotypes == nil {
		return "", ErrNoPhenotypes
	}
	return c.phenotypes.Resolve(s, g)
}

// Outcomes lists the exact offspring distribution of two genotypes of a
// species. Traits are attached when a phenotype table covers them.
func (c *Client) Outcomes(ref, parentA, parentB string) ([]OutcomeItem, error) {
	s, a, b, err := c.parents(ref, parentA, parentB)
	if err != nil {
		return nil, err
	}
	outcomes, err := genetics.Outcomes(a, b)
	if err != nil {
		return nil, err
	}
	items := make([]OutcomeItem, 0, len(outcomes))
	for _, outcome := range outcomes {
		item := OutcomeItem{Genotype: outcome.Genotype.String(), Probability: outcome.Probability}
		if name, err := c.resolve(s, outcome.Genotype); err == nil {
			item.Phenotype = name
		}
		items = append(items, item)
	}
	return items, nil
}

// Simulate samples crosses of two genotypes and stores the tallies.
func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (model.SimulationRecord, error) {
	s, a, b, err := c.parents(req.Species, req.ParentA, req.ParentB)
	if err != nil {
		return model.SimulationRecord{}, err
	}
	if req.Draws <= 0 {
		req.Draws = defaultDraws
	}
	if req.Workers <= 0 {
		req.Workers = c.workers
	}
	if req.Seed == 0 {
		req.Seed = c.seed
	}

	result, err := breeding.Simulate(ctx, breeding.SimulationRequest{
		ParentA: a,
		ParentB: b,
		Draws:   req.Draws,
		Workers: req.Workers,
		Seed:    req.Seed,
	})
	if err != nil {
		return model.SimulationRecord{}, err
	}

	record := model.SimulationRecord{
		VersionedRecord: storage.CurrentVersion(),
		ID:              uuid.NewString(),
		Species:         s.Key(),
		ParentA:         a.String(),
		ParentB:         b.String(),
		Draws:           result.Draws,
		Seed:            req.Seed,
		CreatedAt:       time.Now().UTC(),
		Outcomes:        make([]model.OutcomeCount, 0, len(result.Tallies)),
	}
	for _, tally := range result.Tallies {
		record.Outcomes = append(record.Outcomes, model.OutcomeCount{
			Genotype: tally.Genotype.String(),
			Count:    tally.Count,
			Share:    tally.Share,
		})
	}
	if err := c.store.SaveSimulation(ctx, record); err != nil {
		return model.SimulationRecord{}, err
	}
	c.logger.Info("simulation stored", "id", record.ID, "species", record.Species, "draws", record.Draws, "workers", result.Workers, "outcomes", len(record.Outcomes))
	return record, nil
}

func (c *Client) SimulationRecord(ctx context.Context, id string) (model.SimulationRecord, error) {
	record, ok, err := c.store.GetSimulation(ctx, id)
	if err != nil {
		return model.SimulationRecord{}, err
	}
	if !ok {
		return model.SimulationRecord{}, fmt.Errorf("simulation not found: %s", id)
	}
	return record, nil
}

// Export writes a stored simulation with its exact distribution and fit
// under the exports directory and returns the directory written.
func (c *Client) Export(ctx context.Context, simulationID string) (string, error) {
	record, err := c.SimulationRecord(ctx, simulationID)
	if err != nil {
		return "", err
	}
	_, a, b, err := c.parents(record.Species, record.ParentA, record.ParentB)
	if err != nil {
		return "", err
	}

	artifacts := stats.SimulationArtifacts{Record: record}
	outcomes, err := genetics.Outcomes(a, b)
	switch {
	case err == nil:
		artifacts.Expected = make(map[string]float64, len(outcomes))
		for _, outcome := range outcomes {
			artifacts.Expected[outcome.Genotype.String()] = outcome.Probability
		}
		fit, err := stats.GoodnessOfFit(record.Outcomes, artifacts.Expected)
		if err != nil {
			return "", err
		}
		artifacts.Fit = &fit
	case errors.Is(err, genetics.ErrOutcomeSpace):
		c.logger.Warn("exporting without exact distribution", "simulation", record.ID, "error", err)
	default:
		return "", err
	}

	dir, err := stats.WriteSimulationArtifacts(c.exportsDir, artifacts)
	if err != nil {
		return "", err
	}
	if err := stats.AppendSimulationIndex(c.exportsDir, stats.IndexEntry(record)); err != nil {
		return "", err
	}
	return dir, nil
}

// Exports lists exported simulations, newest first.
func (c *Client) Exports() ([]stats.SimulationIndexEntry, error) {
	return stats.ListSimulationIndex(c.exportsDir)
}

// PlantSeeds plants every seed genotype of the species into a new garden.
func (c *Client) PlantSeeds(ctx context.Context, ref string) (model.Garden, error) {
	s, err := c.catalog.Lookup(ref)
	if err != nil {
		return model.Garden{}, err
	}
	garden := model.Garden{VersionedRecord: storage.CurrentVersion(), ID: uuid.NewString()}
	for _, seed := range s.Seeds() {
		flower, err := c.breeder.Plant(s.Key(), seed)
		if err != nil {
			return model.Garden{}, err
		}
		if err := c.store.SaveFlower(ctx, flower); err != nil {
			return model.Garden{}, err
		}
		garden.FlowerIDs = append(garden.FlowerIDs, flower.ID)
	}
	if err := c.store.SaveGarden(ctx, garden); err != nil {
		return model.Garden{}, err
	}
	return garden, nil
}

func (c *Client) Garden(ctx context.Context, id string) (model.Garden, []model.Flower, error) {
	garden, ok, err := c.store.GetGarden(ctx, id)
	if err != nil {
		return model.Garden{}, nil, err
	}
	if !ok {
		return model.Garden{}, nil, fmt.Errorf("%w: %s", ErrGardenNotFound, id)
	}
	flowers := make([]model.Flower, 0, len(garden.FlowerIDs))
	for _, flowerID := range garden.FlowerIDs {
		flower, err := c.Flower(ctx, flowerID)
		if err != nil {
			return model.Garden{}, nil, fmt.Errorf("garden %s: %w", id, err)
		}
		flowers = append(flowers, flower)
	}
	return garden, flowers, nil
}

// BreedGarden breeds Count children from the garden's flowers and adds them
// to the garden.
func (c *Client) BreedGarden(ctx context.Context, req BreedGardenRequest) ([]model.Flower, error) {
	selector, err := breeding.SelectorByName(req.Selector)
	if err != nil {
		return nil, err
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	garden, pool, err := c.Garden(ctx, req.GardenID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	children, err := c.breeder.BreedRound(ctx, c.rng, pool, selector, req.Count)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if err := c.store.SaveFlower(ctx, child); err != nil {
			return nil, err
		}
		garden.FlowerIDs = append(garden.FlowerIDs, child.ID)
	}
	if err := c.store.SaveGarden(ctx, garden); err != nil {
		return nil, err
	}
	return children, nil
}

// DeleteGarden removes a garden and, when withFlowers is set, its flowers.
func (c *Client) DeleteGarden(ctx context.Context, id string, withFlowers bool) error {
	garden, ok, err := c.store.GetGarden(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrGardenNotFound, id)
	}
	if withFlowers {
		for _, flowerID := range garden.FlowerIDs {
			if err := c.store.DeleteFlower(ctx, flowerID); err != nil {
				return err
			}
		}
	}
	return c.store.DeleteGarden(ctx, id)
}

func (c *Client) parents(ref, parentA, parentB string) (species.Species, genetics.Genotype, genetics.Genotype, error) {
	s, err := c.catalog.Lookup(ref)
	if err != nil {
		return species.Species{}, genetics.Genotype{}, genetics.Genotype{}, err
	}
	a, err := s.ParseGenotype(parentA)
	if err != nil {
		return species.Species{}, genetics.Genotype{}, genetics.Genotype{}, err
	}
	b, err := s.ParseGenotype(parentB)
	if err != nil {
		return species.Species{}, genetics.Genotype{}, genetics.Genotype{}, err
	}
	return s, a, b, nil
}
