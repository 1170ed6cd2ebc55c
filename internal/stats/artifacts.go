package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"bloomcross/internal/model"
)

const simulationIndexFile = "simulation_index.json"

// SimulationIndexEntry is one line of the export directory index.
type SimulationIndexEntry struct {
	SimulationID string `json:"simulation_id"`
	CreatedAtUTC string `json:"created_at_utc"`
	Species      string `json:"species"`
	ParentA      string `json:"parent_a"`
	ParentB      string `json:"parent_b"`
	Draws        int    `json:"draws"`
	Outcomes     int    `json:"outcomes"`
}

// SimulationArtifacts is everything written for one exported simulation.
// Expected may be nil when the exact distribution was not computed.
type SimulationArtifacts struct {
	Record   model.SimulationRecord
	Expected map[string]float64
	Fit      *Fit
}

// WriteSimulationArtifacts writes simulation.json, outcomes.csv and, when
// present, fit.json under baseDir/<simulation id>.
func WriteSimulationArtifacts(baseDir string, artifacts SimulationArtifacts) (string, error) {
	if artifacts.Record.ID == "" {
		return "", fmt.Errorf("simulation id is required")
	}

	dir := filepath.Join(baseDir, artifacts.Record.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "simulation.json"), artifacts.Record); err != nil {
		return "", err
	}
	if err := writeOutcomesCSV(filepath.Join(dir, "outcomes.csv"), artifacts.Record.Outcomes, artifacts.Expected); err != nil {
		return "", err
	}
	if artifacts.Fit != nil {
		if err := writeJSON(filepath.Join(dir, "fit.json"), artifacts.Fit); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func writeOutcomesCSV(path string, outcomes []model.OutcomeCount, expected map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"genotype", "count", "share"}
	if expected != nil {
		header = append(header, "expected")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, outcome := range outcomes {
		row := []string{
			outcome.Genotype,
			strconv.Itoa(outcome.Count),
			strconv.FormatFloat(outcome.Share, 'f', 6, 64),
		}
		if expected != nil {
			row = append(row, strconv.FormatFloat(expected[outcome.Genotype], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// AppendSimulationIndex records entry in baseDir's index, replacing an entry
// with the same simulation id.
func AppendSimulationIndex(baseDir string, entry SimulationIndexEntry) error {
	if entry.SimulationID == "" {
		return fmt.Errorf("simulation id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListSimulationIndex(baseDir)
	if err != nil {
		return err
	}
	for i := range index {
		if index[i].SimulationID == entry.SimulationID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, simulationIndexFile), index)
		}
	}
	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, simulationIndexFile), index)
}

// ListSimulationIndex returns index entries newest first. A missing index is
// an empty list.
func ListSimulationIndex(baseDir string) ([]SimulationIndexEntry, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, simulationIndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []SimulationIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []SimulationIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAtUTC > entries[j].CreatedAtUTC
	})
	return entries, nil
}

// IndexEntry summarizes a record for the export index.
func IndexEntry(record model.SimulationRecord) SimulationIndexEntry {
	return SimulationIndexEntry{
		SimulationID: record.ID,
		CreatedAtUTC: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Species:      record.Species,
		ParentA:      record.ParentA,
		ParentB:      record.ParentB,
		Draws:        record.Draws,
		Outcomes:     len(record.Outcomes),
	}
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
