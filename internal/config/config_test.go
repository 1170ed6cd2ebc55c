package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcross/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"BLOOM_STORE", "BLOOM_DB_PATH", "BLOOM_SEED", "BLOOM_WORKERS", "BLOOM_CATALOG", "BLOOM_PHENOTYPES", "BLOOM_EXPORTS_DIR", "BLOOM_LOG_LEVEL"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultStoreKind(), s.Store)
	assert.Equal(t, "bloomcross.db", s.DBPath)
	assert.Equal(t, int64(1), s.Seed)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, "exports", s.ExportsDir)
	assert.Equal(t, slog.LevelInfo, s.Level())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BLOOM_STORE", "memory")
	t.Setenv("BLOOM_DB_PATH", "/tmp/garden.db")
	t.Setenv("BLOOM_SEED", "99")
	t.Setenv("BLOOM_WORKERS", "8")
	t.Setenv("BLOOM_CATALOG", "catalog.yaml")
	t.Setenv("BLOOM_PHENOTYPES", "phenotypes.json")
	t.Setenv("BLOOM_EXPORTS_DIR", "/tmp/exports")
	t.Setenv("BLOOM_LOG_LEVEL", "DEBUG")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Store:      "memory",
		DBPath:     "/tmp/garden.db",
		Seed:       99,
		Workers:    8,
		Catalog:    "catalog.yaml",
		Phenotypes: "phenotypes.json",
		ExportsDir: "/tmp/exports",
		LogLevel:   "debug",
	}, s)
	assert.Equal(t, slog.LevelDebug, s.Level())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"store":     {"BLOOM_STORE", "postgres"},
		"workers":   {"BLOOM_WORKERS", "0"},
		"log level": {"BLOOM_LOG_LEVEL", "trace"},
		"seed":      {"BLOOM_SEED", "many"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
		})
	}
}
