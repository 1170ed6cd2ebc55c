package model

import (
	"time"

	"bloomcross/internal/genetics"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Flower is one planted organism. Seeds have no parents and generation 0.
type Flower struct {
	VersionedRecord
	ID         string            `json:"id"`
	Species    string            `json:"species"`
	Genotype   genetics.Genotype `json:"genotype"`
	ParentIDs  []string          `json:"parent_ids,omitempty"`
	Generation int               `json:"generation"`
	PlantedAt  time.Time         `json:"planted_at"`
}

// Garden is a named group of flowers bred together.
type Garden struct {
	VersionedRecord
	ID        string   `json:"id"`
	FlowerIDs []string `json:"flower_ids"`
}

// OutcomeCount is how often one offspring genotype appeared in a simulation.
type OutcomeCount struct {
	Genotype string  `json:"genotype"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
}

type SimulationRecord struct {
	VersionedRecord
	ID        string         `json:"id"`
	Species   string         `json:"species"`
	ParentA   string         `json:"parent_a"`
	ParentB   string         `json:"parent_b"`
	Draws     int            `json:"draws"`
	Seed      int64          `json:"seed"`
	CreatedAt time.Time      `json:"created_at"`
	Outcomes  []OutcomeCount `json:"outcomes"`
}
