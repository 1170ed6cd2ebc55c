package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"bloomcross/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	flowers     map[string]model.Flower
	gardens     map[string]model.Garden
	simulations map[string]model.SimulationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.flowers = make(map[string]model.Flower)
	s.gardens = make(map[string]model.Garden)
	s.simulations = make(map[string]model.SimulationRecord)
	return nil
}

func (s *MemoryStore) SaveFlower(_ context.Context, flower model.Flower) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	flower.ParentIDs = append([]string(nil), flower.ParentIDs...)
	s.flowers[flower.ID] = flower
	return nil
}

func (s *MemoryStore) GetFlower(_ context.Context, id string) (model.Flower, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flower, ok := s.flowers[id]
	if !ok {
		return model.Flower{}, false, nil
	}
	flower.ParentIDs = append([]string(nil), flower.ParentIDs...)
	return flower, true, nil
}

func (s *MemoryStore) ListFlowers(_ context.Context, species string) ([]model.Flower, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Flower, 0, len(s.flowers))
	for _, flower := range s.flowers {
		if species != "" && flower.Species != species {
			continue
		}
		flower.ParentIDs = append([]string(nil), flower.ParentIDs...)
		out = append(out, flower)
	}
	sortFlowers(out)
	return out, nil
}

func (s *MemoryStore) DeleteFlower(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.flowers, id)
	return nil
}

func (s *MemoryStore) SaveGarden(_ context.Context, garden model.Garden) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	garden.FlowerIDs = append([]string(nil), garden.FlowerIDs...)
	s.gardens[garden.ID] = garden
	return nil
}

func (s *MemoryStore) GetGarden(_ context.Context, id string) (model.Garden, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	garden, ok := s.gardens[id]
	if !ok {
		return model.Garden{}, false, nil
	}
	garden.FlowerIDs = append([]string(nil), garden.FlowerIDs...)
	return garden, true, nil
}

func (s *MemoryStore) DeleteGarden(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.gardens, id)
	return nil
}

func (s *MemoryStore) SaveSimulation(_ context.Context, simulation model.SimulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	simulation.Outcomes = append([]model.OutcomeCount(nil), simulation.Outcomes...)
	s.simulations[simulation.ID] = simulation
	return nil
}

func (s *MemoryStore) GetSimulation(_ context.Context, id string) (model.SimulationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	simulation, ok := s.simulations[id]
	if !ok {
		return model.SimulationRecord{}, false, nil
	}
	simulation.Outcomes = append([]model.OutcomeCount(nil), simulation.Outcomes...)
	return simulation, true, nil
}

var errNotInitialized = errors.New("store is not initialized")

func sortFlowers(flowers []model.Flower) {
	sort.Slice(flowers, func(i, j int) bool {
		if flowers[i].Generation != flowers[j].Generation {
			return flowers[i].Generation < flowers[j].Generation
		}
		return flowers[i].ID < flowers[j].ID
	})
}
