package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/moviegraph/moviegraph/internal/config"
	"github.com/moviegraph/moviegraph/internal/logging"
	"github.com/moviegraph/moviegraph/internal/repository"
	"github.com/moviegraph/moviegraph/internal/service"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load a YAML dataset of movies and people into the graph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "dataset to load",
				Value:   "seed-data/movies.yaml",
				Sources: cli.EnvVars("SEED_FILE"),
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "number of concurrent write transactions",
				Value:   4,
				Sources: cli.EnvVars("SEED_WORKERS"),
			},
		},
		Action: runSeed,
	}
}

func runSeed(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	logger := logging.New(cfg.Logging).With("component", "seed")

	path := cmd.String("file")
	dataset, err := service.LoadDataset(path)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		return errors.WithMessage(err, "create graph client")
	}
	defer closeGraphClient(logger, graphClient)

	start := time.Now()
	seeder := service.NewSeeder(repository.New(graphClient), cmd.Int("workers"), logger)
	stats, err := seeder.Seed(ctx, dataset)
	if err != nil {
		return errors.WithMessage(err, "seed graph")
	}

	logger.Info("seeding completed",
		"path", path,
		"people", stats.People,
		"movies", stats.Movies,
		"roles", stats.Roles,
		"missing_roles", stats.MissingRoles,
		"duration", time.Since(start).String(),
	)
	return nil
}
