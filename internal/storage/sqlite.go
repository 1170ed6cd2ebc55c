//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"bloomcross/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveFlower(ctx context.Context, flower model.Flower) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeFlower(flower)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO flowers (id, species, generation, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			species = excluded.species,
			generation = excluded.generation,
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, flower.ID, flower.Species, flower.Generation, flower.SchemaVersion, flower.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetFlower(ctx context.Context, id string) (model.Flower, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Flower{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM flowers WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Flower{}, false, nil
		}
		return model.Flower{}, false, err
	}

	flower, err := DecodeFlower(payload)
	if err != nil {
		return model.Flower{}, false, fmt.Errorf("decode flower %s: %w", id, err)
	}
	return flower, true, nil
}

func (s *SQLiteStore) ListFlowers(ctx context.Context, species string) ([]model.Flower, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, payload FROM flowers
		WHERE ? = '' OR species = ?
		ORDER BY generation, id
	`, species, species)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Flower, 0)
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		flower, err := DecodeFlower(payload)
		if err != nil {
			return nil, fmt.Errorf("decode flower %s: %w", id, err)
		}
		out = append(out, flower)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteFlower(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM flowers WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) SaveGarden(ctx context.Context, garden model.Garden) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeGarden(garden)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO gardens (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, garden.ID, garden.SchemaVersion, garden.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetGarden(ctx context.Context, id string) (model.Garden, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Garden{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM gardens WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Garden{}, false, nil
		}
		return model.Garden{}, false, err
	}

	garden, err := DecodeGarden(payload)
	if err != nil {
		return model.Garden{}, false, fmt.Errorf("decode garden %s: %w", id, err)
	}
	return garden, true, nil
}

func (s *SQLiteStore) DeleteGarden(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM gardens WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) SaveSimulation(ctx context.Context, simulation model.SimulationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeSimulation(simulation)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO simulations (id, species, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			species = excluded.species,
			payload = excluded.payload
	`, simulation.ID, simulation.Species, payload)
	return err
}

func (s *SQLiteStore) GetSimulation(ctx context.Context, id string) (model.SimulationRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.SimulationRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM simulations WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SimulationRecord{}, false, nil
		}
		return model.SimulationRecord{}, false, err
	}

	simulation, err := DecodeSimulation(payload)
	if err != nil {
		return model.SimulationRecord{}, false, fmt.Errorf("decode simulation %s: %w", id, err)
	}
	return simulation, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS flowers (
			id TEXT PRIMARY KEY,
			species TEXT NOT NULL,
			generation INTEGER NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS flowers_species ON flowers (species);
		CREATE TABLE IF NOT EXISTS gardens (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS simulations (
			id TEXT PRIMARY KEY,
			species TEXT NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
