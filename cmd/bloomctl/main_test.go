package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcross/internal/model"
	bloomapi "bloomcross/pkg/bloomcross"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BLOOM_STORE", "memory")
	t.Setenv("BLOOM_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestSpeciesCommandJSON(t *testing.T) {
	out, err := runCLI(t, "species")
	require.NoError(t, err)

	var items []bloomapi.SpeciesItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "acnh/rose", items[0].Key)
	assert.Equal(t, []string{"2-0-0-1", "0-0-1-0", "0-2-0-0"}, items[0].Seeds)
}

func TestSpeciesCommandText(t *testing.T) {
	out, err := runCLI(t, "species", "-o", "text", "--catalog", filepath.Join("..", "..", "pkg", "bloomcross", "testdata", "catalog.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "custom/tulip")
	assert.Contains(t, out, "[bloodlike,mendelian]")
}

func TestRandomCommandIsSeeded(t *testing.T) {
	first, err := runCLI(t, "random", "rose", "-n", "4", "--seed", "21", "-o", "text")
	require.NoError(t, err)
	second, err := runCLI(t, "random", "rose", "-n", "4", "--seed", "21", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, strings.Fields(first), 4)
}

func TestCrossCommand(t *testing.T) {
	out, err := runCLI(t, "cross", "mum", "2-2-2", "0-0-0", "-n", "3")
	require.NoError(t, err)

	var children []string
	require.NoError(t, json.Unmarshal([]byte(out), &children))
	assert.Equal(t, []string{"1-1-1", "1-1-1", "1-1-1"}, children)

	_, err = runCLI(t, "cross", "mum", "2-2-2", "0-0-0-0")
	require.Error(t, err)
}

func TestIndexCommand(t *testing.T) {
	out, err := runCLI(t, "index", "rose", "2-0-0-1", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "genotype=2-0-0-1 genes=[mendelian,mendelian,mendelian,mendelian] index=55\n", out)
}

func TestOutcomesCommandText(t *testing.T) {
	out, err := runCLI(t, "outcomes", "hyacinth", "1-0-0", "1-0-0", "-o", "text")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1-0-0"))
	assert.Contains(t, lines[1], "50%")
}

func TestSimulateCommand(t *testing.T) {
	exports := t.TempDir()
	out, err := runCLI(t, "simulate", "mum", "1-1-1", "1-1-1", "--draws", "1200", "--workers", "3", "--export", "--exports-dir", exports)
	require.NoError(t, err)

	var record model.SimulationRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, 1200, record.Draws)
	total := 0
	for _, outcome := range record.Outcomes {
		total += outcome.Count
	}
	assert.Equal(t, 1200, total)
	assert.FileExists(t, filepath.Join(exports, record.ID, "outcomes.csv"))
	assert.FileExists(t, filepath.Join(exports, "simulation_index.json"))
}

func TestPlantAndGardenSeedCommands(t *testing.T) {
	out, err := runCLI(t, "plant", "rose", "0-2-0-0")
	require.NoError(t, err)
	var flowers []model.Flower
	require.NoError(t, json.Unmarshal([]byte(out), &flowers))
	require.Len(t, flowers, 1)
	assert.Equal(t, "0-2-0-0", flowers[0].Genotype.String())

	_, err = runCLI(t, "plant", "rose")
	require.Error(t, err)

	out, err = runCLI(t, "garden", "seed", "hyacinth", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "flowers=3")
	assert.Contains(t, out, "2-0-1")
}

func TestRejectsBadSettings(t *testing.T) {
	_, err := runCLI(t, "species", "-o", "yaml")
	require.Error(t, err)
	_, err = runCLI(t, "species", "--workers", "0")
	require.Error(t, err)
	_, err = runCLI(t, "show", "missing")
	require.ErrorIs(t, err, bloomapi.ErrFlowerNotFound)
}
