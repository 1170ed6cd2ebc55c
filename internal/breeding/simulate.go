package breeding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"bloomcross/internal/genetics"
)

// cancelCheckEvery is how many draws a worker makes between context checks.
const cancelCheckEvery = 1024

type SimulationRequest struct {
	ParentA genetics.Genotype
	ParentB genetics.Genotype
	Draws   int
	Workers int
	Seed    int64
}

// Tally is the sampled frequency of one offspring genotype next to its exact
// probability.
type Tally struct {
	Genotype genetics.Genotype
	Count    int
	Share    float64
	Expected float64
}

type SimulationResult struct {
	Draws   int
	Workers int
	Tallies []Tally
}

// Simulate samples Draws crosses of the two parents. Work is split across
// Workers goroutines, each owning a *rand.Rand seeded with Seed plus its
// worker index, so results are reproducible for a given seed and worker count.
func Simulate(ctx context.Context, req SimulationRequest) (SimulationResult, error) {
	if req.Draws <= 0 {
		return SimulationResult{}, fmt.Errorf("invalid draw count: %d", req.Draws)
	}
	if !genetics.CanCross(req.ParentA, req.ParentB) {
		return SimulationResult{}, fmt.Errorf("%w: cannot cross %s with %s", genetics.ErrSchemaMismatch, req.ParentA.GenePrint(), req.ParentB.GenePrint())
	}
	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > req.Draws {
		workers = req.Draws
	}

	partials := make([]map[string]int, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		draws := req.Draws / workers
		if w < req.Draws%workers {
			draws++
		}
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(req.Seed + int64(w)))
			counts := make(map[string]int)
			for i := 0; i < draws; i++ {
				if i%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				child, err := genetics.Cross(rng, req.ParentA, req.ParentB)
				if err != nil {
					return err
				}
				counts[child.String()]++
			}
			partials[w] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SimulationResult{}, err
	}

	merged := make(map[string]int)
	for _, counts := range partials {
		for notation, n := range counts {
			merged[notation] += n
		}
	}

	expected := map[string]float64{}
	outcomes, err := genetics.Outcomes(req.ParentA, req.ParentB)
	switch {
	case err == nil:
		for _, outcome := range outcomes {
			expected[outcome.Genotype.String()] = outcome.Probability
		}
	case errors.Is(err, genetics.ErrOutcomeSpace):
		expected = nil
	default:
		return SimulationResult{}, err
	}

	tallies := make([]Tally, 0, len(merged))
	for notation, n := range merged {
		child, err := genetics.ParseGenotype(notation)
		if err != nil {
			return SimulationResult{}, err
		}
		tallies = append(tallies, Tally{
			Genotype: child,
			Count:    n,
			Share:    float64(n) / float64(req.Draws),
			Expected: expected[notation],
		})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Genotype.String() < tallies[j].Genotype.String()
	})
	return SimulationResult{Draws: req.Draws, Workers: workers, Tallies: tallies}, nil
}
