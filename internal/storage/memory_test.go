package storage

import (
	"context"
	"testing"

	"bloomcross/internal/genetics"
	"bloomcross/internal/model"
)

func newFlower(t *testing.T, id, species, notation string, generation int, parents ...string) model.Flower {
	t.Helper()
	g, err := genetics.ParseGenotype(notation)
	if err != nil {
		t.Fatalf("parse %s: %v", notation, err)
	}
	return model.Flower{
		VersionedRecord: CurrentVersion(),
		ID:              id,
		Species:         species,
		Genotype:        g,
		ParentIDs:       parents,
		Generation:      generation,
	}
}

func TestMemoryStoreFlowerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	parents := []string{"p1", "p2"}
	flower := newFlower(t, "f1", "acnh/rose", "1-0-0-1", 1, parents...)
	if err := store.SaveFlower(ctx, flower); err != nil {
		t.Fatalf("save flower: %v", err)
	}
	parents[0] = "mutated"

	got, ok, err := store.GetFlower(ctx, "f1")
	if err != nil {
		t.Fatalf("get flower: %v", err)
	}
	if !ok {
		t.Fatal("expected stored flower")
	}
	if !got.Genotype.Equal(flower.Genotype) || got.ParentIDs[0] != "p1" {
		t.Fatalf("unexpected flower: %+v", got)
	}

	if err := store.DeleteFlower(ctx, "f1"); err != nil {
		t.Fatalf("delete flower: %v", err)
	}
	if _, ok, _ := store.GetFlower(ctx, "f1"); ok {
		t.Fatal("expected deleted flower to be absent")
	}
}

func TestMemoryStoreListFlowersFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, f := range []model.Flower{
		newFlower(t, "b", "acnh/rose", "0-0-0-0", 1),
		newFlower(t, "a", "acnh/rose", "2-0-0-1", 0),
		newFlower(t, "c", "acnh/rose", "2-2-0-1", 0),
		newFlower(t, "m", "acnh/mum", "2-0-0", 0),
	} {
		if err := store.SaveFlower(ctx, f); err != nil {
			t.Fatalf("save %s: %v", f.ID, err)
		}
	}

	roses, err := store.ListFlowers(ctx, "acnh/rose")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(roses) != 3 || roses[0].ID != "a" || roses[1].ID != "c" || roses[2].ID != "b" {
		t.Fatalf("unexpected roses: %+v", roses)
	}

	all, err := store.ListFlowers(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 flowers, got %d", len(all))
	}
}

func TestMemoryStoreGardenAndSimulation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	garden := model.Garden{VersionedRecord: CurrentVersion(), ID: "g1", FlowerIDs: []string{"a"}}
	if err := store.SaveGarden(ctx, garden); err != nil {
		t.Fatalf("save garden: %v", err)
	}
	got, ok, err := store.GetGarden(ctx, "g1")
	if err != nil || !ok {
		t.Fatalf("get garden: ok=%v err=%v", ok, err)
	}
	if len(got.FlowerIDs) != 1 {
		t.Fatalf("unexpected garden: %+v", got)
	}
	if err := store.DeleteGarden(ctx, "g1"); err != nil {
		t.Fatalf("delete garden: %v", err)
	}
	if _, ok, _ := store.GetGarden(ctx, "g1"); ok {
		t.Fatal("expected deleted garden")
	}

	simulation := model.SimulationRecord{VersionedRecord: CurrentVersion(), ID: "s1", Draws: 5}
	if err := store.SaveSimulation(ctx, simulation); err != nil {
		t.Fatalf("save simulation: %v", err)
	}
	if got, ok, err := store.GetSimulation(ctx, "s1"); err != nil || !ok || got.Draws != 5 {
		t.Fatalf("get simulation: %+v ok=%v err=%v", got, ok, err)
	}
}

func TestMemoryStoreRequiresInit(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SaveFlower(context.Background(), model.Flower{ID: "x"}); err == nil {
		t.Fatal("expected error before init")
	}
}
