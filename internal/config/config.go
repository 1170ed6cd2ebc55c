package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"bloomcross/internal/storage"
)

// Prefix is prepended to every variable name, e.g. BLOOM_STORE.
const Prefix = "BLOOM"

// Settings holds everything bloomctl and the client read from the
// environment. Command-line flags override individual fields.
type Settings struct {
	Store      string `envconfig:"STORE" validate:"omitempty,oneof=memory sqlite"`
	DBPath     string `envconfig:"DB_PATH" default:"bloomcross.db" validate:"required"`
	Seed       int64  `envconfig:"SEED" default:"1"`
	Workers    int    `envconfig:"WORKERS" default:"4" validate:"min=1,max=256"`
	Catalog    string `envconfig:"CATALOG"`
	Phenotypes string `envconfig:"PHENOTYPES"`
	ExportsDir string `envconfig:"EXPORTS_DIR" default:"exports"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// Load reads the BLOOM_* variables, applies defaults and validates ranges.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process(Prefix, &s); err != nil {
		return Settings{}, fmt.Errorf("read environment: %w", err)
	}
	if s.Store == "" {
		s.Store = storage.DefaultStoreKind()
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Level maps LogLevel onto slog. Unknown names fall back to info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
