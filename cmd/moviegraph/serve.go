package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/moviegraph/moviegraph/internal/config"
	"github.com/moviegraph/moviegraph/internal/logging"
	"github.com/moviegraph/moviegraph/internal/repository"
	"github.com/moviegraph/moviegraph/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Usage:   "interface to listen on",
				Sources: cli.EnvVars("SERVER_HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "port to listen on",
				Sources: cli.EnvVars("SERVER_PORT"),
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if cmd.IsSet("host") {
		cfg.HTTP.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.HTTP.Port = cmd.Int("port")
	}

	logger := logging.New(cfg.Logging)
	gin.SetMode(cfg.HTTP.Mode)

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		return errors.WithMessage(err, "create graph client")
	}
	defer closeGraphClient(logger, graphClient)

	repo := repository.New(graphClient)
	router, err := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.GraphHealthService{Client: graphClient, Logger: logger},
		Movies:           server.NewMovieHandlers(logger, repo),
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(logger, cfg.HTTP, router).Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		return err
	}
	return nil
}
