package breeding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcross/internal/genetics"
)

func parse(t *testing.T, notation string) genetics.Genotype {
	t.Helper()
	g, err := genetics.ParseGenotype(notation)
	require.NoError(t, err)
	return g
}

func TestSimulateMatchesExactDistribution(t *testing.T) {
	res, err := Simulate(context.Background(), SimulationRequest{
		ParentA: parse(t, "1-AO-q2"),
		ParentB: parse(t, "1-BO-q2"),
		Draws:   30000,
		Workers: 4,
		Seed:    17,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Workers)

	total := 0
	for _, tally := range res.Tallies {
		total += tally.Count
		assert.Greater(t, tally.Expected, 0.0, tally.Genotype.String())
		assert.InDelta(t, tally.Expected, tally.Share, 0.01, tally.Genotype.String())
	}
	assert.Equal(t, 30000, total)
}

func TestSimulateIsReproducible(t *testing.T) {
	req := SimulationRequest{ParentA: parse(t, "1-1-1"), ParentB: parse(t, "1-1-1"), Draws: 500, Workers: 3, Seed: 5}
	first, err := Simulate(context.Background(), req)
	require.NoError(t, err)
	second, err := Simulate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, len(first.Tallies), len(second.Tallies))
	for i := range first.Tallies {
		assert.Equal(t, first.Tallies[i].Genotype.String(), second.Tallies[i].Genotype.String())
		assert.Equal(t, first.Tallies[i].Count, second.Tallies[i].Count)
	}
}

func TestSimulateDeterministicCross(t *testing.T) {
	res, err := Simulate(context.Background(), SimulationRequest{
		ParentA: parse(t, "2-2"), ParentB: parse(t, "0-0"), Draws: 10, Workers: 32, Seed: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Workers)
	require.Len(t, res.Tallies, 1)
	assert.Equal(t, "1-1", res.Tallies[0].Genotype.String())
	assert.Equal(t, 10, res.Tallies[0].Count)
	assert.InDelta(t, 1.0, res.Tallies[0].Expected, 1e-12)
}

func TestSimulateValidation(t *testing.T) {
	_, err := Simulate(context.Background(), SimulationRequest{ParentA: parse(t, "1"), ParentB: parse(t, "AB"), Draws: 10})
	require.ErrorIs(t, err, genetics.ErrSchemaMismatch)

	_, err = Simulate(context.Background(), SimulationRequest{ParentA: parse(t, "1"), ParentB: parse(t, "1")})
	require.Error(t, err)
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Simulate(ctx, SimulationRequest{ParentA: parse(t, "1"), ParentB: parse(t, "1"), Draws: 100, Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
}
