package storage

import (
	"encoding/json"
	"errors"

	"bloomcross/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// CurrentVersion stamps new records.
func CurrentVersion() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

func EncodeFlower(f model.Flower) ([]byte, error) {
	return json.Marshal(f)
}

func DecodeFlower(data []byte) (model.Flower, error) {
	var flower model.Flower
	if err := json.Unmarshal(data, &flower); err != nil {
		return model.Flower{}, err
	}
	if err := checkVersion(flower.VersionedRecord); err != nil {
		return model.Flower{}, err
	}
	return flower, nil
}

func EncodeGarden(g model.Garden) ([]byte, error) {
	return json.Marshal(g)
}

func DecodeGarden(data []byte) (model.Garden, error) {
	var garden model.Garden
	if err := json.Unmarshal(data, &garden); err != nil {
		return model.Garden{}, err
	}
	if err := checkVersion(garden.VersionedRecord); err != nil {
		return model.Garden{}, err
	}
	return garden, nil
}

func EncodeSimulation(s model.SimulationRecord) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSimulation(data []byte) (model.SimulationRecord, error) {
	var simulation model.SimulationRecord
	if err := json.Unmarshal(data, &simulation); err != nil {
		return model.SimulationRecord{}, err
	}
	if err := checkVersion(simulation.VersionedRecord); err != nil {
		return model.SimulationRecord{}, err
	}
	return simulation, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
