package storage

import (
	"context"

	"bloomcross/internal/model"
)

// Store defines persistence operations for flowers, gardens and simulations.
type Store interface {
	Init(ctx context.Context) error
	SaveFlower(ctx context.Context, flower model.Flower) error
	GetFlower(ctx context.Context, id string) (model.Flower, bool, error)
	ListFlowers(ctx context.Context, species string) ([]model.Flower, error)
	DeleteFlower(ctx context.Context, id string) error
	SaveGarden(ctx context.Context, garden model.Garden) error
	GetGarden(ctx context.Context, id string) (model.Garden, bool, error)
	DeleteGarden(ctx context.Context, id string) error
	SaveSimulation(ctx context.Context, simulation model.SimulationRecord) error
	GetSimulation(ctx context.Context, id string) (model.SimulationRecord, bool, error)
}
