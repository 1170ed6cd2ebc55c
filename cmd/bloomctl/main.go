package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bloomcross/internal/config"
	bloomapi "bloomcross/pkg/bloomcross"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(&app{stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries the resolved settings shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	settings config.Settings
	output   string
	logger   *slog.Logger

	flags struct {
		store      string
		dbPath     string
		catalog    string
		phenotypes string
		exportsDir string
		seed       int64
		workers    int
		logLevel   string
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bloomctl",
		Short:         "Cross flower genotypes and track bred flowers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.store, "store", "", "store backend: memory|sqlite (env BLOOM_STORE)")
	pf.StringVar(&a.flags.dbPath, "db-path", "", "sqlite database path (env BLOOM_DB_PATH)")
	pf.StringVar(&a.flags.catalog, "catalog", "", "extra species catalog YAML (env BLOOM_CATALOG)")
	pf.StringVar(&a.flags.phenotypes, "phenotypes", "", "phenotype table JSON (env BLOOM_PHENOTYPES)")
	pf.StringVar(&a.flags.exportsDir, "exports-dir", "", "simulation export directory (env BLOOM_EXPORTS_DIR)")
	pf.Int64Var(&a.flags.seed, "seed", 0, "random seed (env BLOOM_SEED)")
	pf.IntVar(&a.flags.workers, "workers", 0, "simulation workers (env BLOOM_WORKERS)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug|info|warn|error (env BLOOM_LOG_LEVEL)")
	pf.StringVarP(&a.output, "output", "o", "auto", "output format: auto|text|json")

	root.AddCommand(
		newSpeciesCommand(a),
		newRandomCommand(a),
		newCrossCommand(a),
		newIndexCommand(a),
		newOutcomesCommand(a),
		newSimulateCommand(a),
		newPlantCommand(a),
		newBreedCommand(a),
		newShowCommand(a),
		newListCommand(a),
		newGardenCommand(a),
	)
	return root
}

// configure layers changed flags over the environment settings.
func (a *app) configure(cmd *cobra.Command) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		settings.Store = a.flags.store
	}
	if flags.Changed("db-path") {
		settings.DBPath = a.flags.dbPath
	}
	if flags.Changed("catalog") {
		settings.Catalog = a.flags.catalog
	}
	if flags.Changed("phenotypes") {
		settings.Phenotypes = a.flags.phenotypes
	}
	if flags.Changed("exports-dir") {
		settings.ExportsDir = a.flags.exportsDir
	}
	if flags.Changed("seed") {
		settings.Seed = a.flags.seed
	}
	if flags.Changed("workers") {
		settings.Workers = a.flags.workers
	}
	if flags.Changed("log-level") {
		settings.LogLevel = a.flags.logLevel
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	switch a.output {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unsupported output format: %s", a.output)
	}

	a.settings = settings
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: settings.Level()}))
	return nil
}

func (a *app) open() (*bloomapi.Client, error) {
	return bloomapi.New(bloomapi.Options{
		StoreKind:      a.settings.Store,
		DBPath:         a.settings.DBPath,
		CatalogPath:    a.settings.Catalog,
		PhenotypesPath: a.settings.Phenotypes,
		ExportsDir:     a.settings.ExportsDir,
		Seed:           a.settings.Seed,
		Workers:        a.settings.Workers,
		Logger:         a.logger,
	})
}

// withClient opens a client for the duration of fn.
func (a *app) withClient(fn func(*bloomapi.Client) error) error {
	client, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	return fn(client)
}
