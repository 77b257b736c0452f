package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/moviegraph/moviegraph/internal/config"
	"github.com/moviegraph/moviegraph/internal/graph"
)

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	logger.Info("connecting to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		TxTimeout:      cfg.Graph.TxTimeout,
	})
}

func closeGraphClient(logger *slog.Logger, client graph.Client) {
	if client == nil {
		return
	}
	if err := client.Close(context.Background()); err != nil {
		logger.Warn("closing graph client failed", "error", err)
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
