package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/moviegraph/moviegraph/internal/generator"
)

func datagenCommand() *cli.Command {
	defaults := generator.DefaultConfig()
	return &cli.Command{
		Name:  "datagen",
		Usage: "Generate a synthetic dataset for the seed command",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "movies",
				Usage: "number of movies to generate",
				Value: defaults.NumMovies,
			},
			&cli.IntFlag{
				Name:  "people",
				Usage: "number of people to generate",
				Value: defaults.NumPeople,
			},
			&cli.IntFlag{
				Name:  "cast-size",
				Usage: "maximum number of actors per movie",
				Value: defaults.MaxCast,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed for deterministic generation (0 picks one)",
				Value: defaults.Seed,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: `file to write, or "-" for stdout`,
				Value: "-",
			},
		},
		Action: runDatagen,
	}
}

func runDatagen(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	gen := generator.New(generator.Config{
		NumMovies: cmd.Int("movies"),
		NumPeople: cmd.Int("people"),
		MaxCast:   cmd.Int("cast-size"),
		Seed:      cmd.Int64("seed"),
	})
	dataset, err := gen.Generate(ctx)
	if err != nil {
		return errors.WithMessage(err, "generate dataset")
	}

	out := cmd.String("out")
	if out == "-" {
		return generator.EncodeDataset(os.Stdout, dataset)
	}
	if err := generator.WriteDataset(dataset, out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d movies and %d people to %s\n", len(dataset.Movies), len(dataset.People), out)
	return nil
}
