package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/moviegraph/moviegraph/internal/graph"
)

const healthProbeTimeout = 2 * time.Second

// HealthService reports whether the movie graph can serve page requests.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService checks Bolt connectivity to the movie graph. The driver
// cause is logged, never returned: callers only see ErrDatabaseUnavailable.
type GraphHealthService struct {
	Client graph.Client
	Logger *slog.Logger
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	if err := s.Client.VerifyConnectivity(ctx); err != nil {
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("movie graph unreachable", "component", "health", "error", err)
		return graph.ErrDatabaseUnavailable
	}
	return nil
}

// healthHandler serves /healthz. The body names the failing dependency but
// carries no error text.
func healthHandler(logger *slog.Logger, svc HealthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()

		err := svc.Probe(ctx)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "graph": "up"})
			return
		}

		graphState := "error"
		if errors.Is(err, graph.ErrDatabaseUnavailable) || errors.Is(err, context.DeadlineExceeded) {
			graphState = "unavailable"
		}
		logger.Error("health probe failed", "component", "health", "graph", graphState)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "graph": graphState})
	}
}
