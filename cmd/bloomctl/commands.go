package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bloomcross/internal/model"
	bloomapi "bloomcross/pkg/bloomcross"
)

func newSpeciesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List known species and their seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				items := client.Species()
				if a.jsonOutput() {
					return a.writeJSON(items)
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{item.Key, item.Name, item.GenePrint, strings.Join(item.Seeds, " ")})
				}
				return a.table([]string{"KEY", "NAME", "GENES", "SEEDS"}, rows)
			})
		},
	}
}

func newRandomCommand(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "random <species>",
		Short: "Generate random genotypes of a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("count must be > 0")
			}
			return a.withClient(func(client *bloomapi.Client) error {
				out := make([]string, 0, n)
				for i := 0; i < n; i++ {
					g, err := client.Random(args[0])
					if err != nil {
						return err
					}
					out = append(out, g.String())
				}
				if a.jsonOutput() {
					return a.writeJSON(out)
				}
				printLines(a.stdout, out)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of genotypes")
	return cmd
}

func newCrossCommand(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "cross <species> <genotype> <genotype>",
		Short: "Cross two genotypes without storing the offspring",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				children, err := client.CrossGenotypes(args[0], args[1], args[2], n)
				if err != nil {
					return err
				}
				out := make([]string, 0, len(children))
				for _, child := range children {
					out = append(out, child.String())
				}
				if a.jsonOutput() {
					return a.writeJSON(out)
				}
				printLines(a.stdout, out)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of offspring")
	return cmd
}

func newIndexCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index <species> <genotype>",
		Short: "Show the lookup index and trait of a genotype",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				info, err := client.Describe(args[0], args[1])
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return a.writeJSON(info)
				}
				index := "undefined"
				if info.Index != nil {
					index = strconv.Itoa(*info.Index)
				}
				fmt.Fprintf(a.stdout, "genotype=%s genes=%s index=%s", info.Genotype, info.GenePrint, index)
				if info.Phenotype != "" {
					fmt.Fprintf(a.stdout, " phenotype=%s", info.Phenotype)
				}
				fmt.Fprintln(a.stdout)
				return nil
			})
		},
	}
}

func newOutcomesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "outcomes <species> <genotype> <genotype>",
		Short: "Print the exact offspring distribution of a cross",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				items, err := client.Outcomes(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return a.writeJSON(items)
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{item.Genotype, percent(item.Probability), item.Phenotype})
				}
				return a.table([]string{"GENOTYPE", "PROBABILITY", "PHENOTYPE"}, rows)
			})
		},
	}
}

func newSimulateCommand(a *app) *cobra.Command {
	var draws int
	var export bool
	cmd := &cobra.Command{
		Use:   "simulate <species> <genotype> <genotype>",
		Short: "Sample many crosses in parallel and store the tallies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				record, err := client.Simulate(cmd.Context(), bloomapi.SimulateRequest{
					Species: args[0],
					ParentA: args[1],
					ParentB: args[2],
					Draws:   draws,
				})
				if err != nil {
					return err
				}
				if export {
					dir, err := client.Export(cmd.Context(), record.ID)
					if err != nil {
						return err
					}
					a.logger.Info("exported simulation", "dir", dir)
				}
				if a.jsonOutput() {
					return a.writeJSON(record)
				}
				fmt.Fprintf(a.stdout, "simulation=%s species=%s draws=%s seed=%d\n", record.ID, record.Species, count(record.Draws), record.Seed)
				return a.table([]string{"GENOTYPE", "COUNT", "SHARE"}, outcomeRows(record.Outcomes))
			})
		},
	}
	cmd.Flags().IntVar(&draws, "draws", 10000, "number of sampled crosses")
	cmd.Flags().BoolVar(&export, "export", false, "write artifacts under the exports directory")
	return cmd
}

func outcomeRows(outcomes []model.OutcomeCount) [][]string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, []string{outcome.Genotype, count(outcome.Count), percent(outcome.Share)})
	}
	return rows
}

func newPlantCommand(a *app) *cobra.Command {
	var random bool
	cmd := &cobra.Command{
		Use:   "plant <species> [genotype]",
		Short: "Plant and store a flower",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := bloomapi.PlantRequest{Species: args[0], Random: random}
			if len(args) == 2 {
				req.Genotype = args[1]
			}
			if !random && req.Genotype == "" {
				return errors.New("plant requires a genotype or --random")
			}
			return a.withClient(func(client *bloomapi.Client) error {
				flower, err := client.Plant(cmd.Context(), req)
				if err != nil {
					return err
				}
				return a.printFlowers([]model.Flower{flower})
			})
		},
	}
	cmd.Flags().BoolVar(&random, "random", false, "plant a random genotype")
	return cmd
}

func newBreedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "breed <flower-id> <flower-id>",
		Short: "Cross two stored flowers and store the child",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				child, err := client.Cross(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.printFlowers([]model.Flower{child})
			})
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <flower-id>",
		Short: "Show a stored flower",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				flower, err := client.Flower(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				trait, err := client.Phenotype(cmd.Context(), flower.ID)
				if err != nil {
					a.logger.Debug("no phenotype", "flower", flower.ID, "error", err)
				}
				if a.jsonOutput() {
					return a.writeJSON(struct {
						model.Flower
						Phenotype string `json:"phenotype,omitempty"`
					}{flower, trait})
				}
				if err := a.printFlowers([]model.Flower{flower}); err != nil {
					return err
				}
				if trait != "" {
					fmt.Fprintf(a.stdout, "phenotype=%s\n", trait)
				}
				return nil
			})
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	var speciesRef string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored flowers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				flowers, err := client.Flowers(cmd.Context(), speciesRef)
				if err != nil {
					return err
				}
				return a.printFlowers(flowers)
			})
		},
	}
	cmd.Flags().StringVar(&speciesRef, "species", "", "only list this species")
	return cmd
}

func newGardenCommand(a *app) *cobra.Command {
	garden := &cobra.Command{
		Use:   "garden",
		Short: "Manage gardens of flowers",
	}

	seed := &cobra.Command{
		Use:   "seed <species>",
		Short: "Plant the seed flowers of a species into a new garden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				g, err := client.PlantSeeds(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printGarden(cmd, client, g.ID)
			})
		},
	}

	var selector string
	var n int
	breed := &cobra.Command{
		Use:   "breed <garden-id>",
		Short: "Breed offspring from a garden's flowers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				children, err := client.BreedGarden(cmd.Context(), bloomapi.BreedGardenRequest{
					GardenID: args[0],
					Selector: selector,
					Count:    n,
				})
				if err != nil {
					return err
				}
				return a.printFlowers(children)
			})
		},
	}
	breed.Flags().StringVar(&selector, "selector", "random", "pair selection: random|distinct")
	breed.Flags().IntVarP(&n, "count", "n", 1, "number of offspring")

	show := &cobra.Command{
		Use:   "show <garden-id>",
		Short: "Show the flowers of a garden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				return a.printGarden(cmd, client, args[0])
			})
		},
	}

	var withFlowers bool
	remove := &cobra.Command{
		Use:   "delete <garden-id>",
		Short: "Delete a garden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(client *bloomapi.Client) error {
				if err := client.DeleteGarden(cmd.Context(), args[0], withFlowers); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "deleted garden=%s\n", args[0])
				return nil
			})
		},
	}
	remove.Flags().BoolVar(&withFlowers, "flowers", false, "also delete the garden's flowers")

	garden.AddCommand(seed, breed, show, remove)
	return garden
}

func (a *app) printGarden(cmd *cobra.Command, client *bloomapi.Client, id string) error {
	g, flowers, err := client.Garden(cmd.Context(), id)
	if err != nil {
		return err
	}
	if a.jsonOutput() {
		return a.writeJSON(struct {
			model.Garden
			Flowers []model.Flower `json:"flowers"`
		}{g, flowers})
	}
	fmt.Fprintf(a.stdout, "garden=%s flowers=%s\n", g.ID, count(len(flowers)))
	return a.printFlowers(flowers)
}

func (a *app) printFlowers(flowers []model.Flower) error {
	if a.jsonOutput() {
		return a.writeJSON(flowers)
	}
	rows := make([][]string, 0, len(flowers))
	for _, f := range flowers {
		rows = append(rows, []string{f.ID, f.Species, f.Genotype.String(), strconv.Itoa(f.Generation), strings.Join(f.ParentIDs, ",")})
	}
	return a.table([]string{"ID", "SPECIES", "GENOTYPE", "GEN", "PARENTS"}, rows)
}
