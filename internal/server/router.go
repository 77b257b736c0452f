package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/pkg/errors"
)

// RouterDependencies bundles the collaborators required by the HTTP router.
type RouterDependencies struct {
	Health           HealthService
	Movies           *MovieHandlers
	Renderer         render.HTMLRender
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter constructs the gin engine with all routes and middleware
// registered. The embedded page templates are used unless deps.Renderer is
// set.
func NewRouter(logger *slog.Logger, deps RouterDependencies) (*gin.Engine, error) {
	renderer := deps.Renderer
	if renderer == nil {
		r, err := NewRenderer()
		if err != nil {
			return nil, err
		}
		renderer = r
	}

	engine := gin.New()
	// Route on the escaped path so "%2F" in a title stays inside one segment.
	engine.UseRawPath = true
	engine.UnescapePathValues = true
	engine.HTMLRender = renderer

	engine.Use(gin.Recovery(), requestLogger(logger))
	if len(deps.AllowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: deps.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}
		// cors.New panics on an invalid config.
		if err := corsCfg.Validate(); err != nil {
			return nil, errors.Wrap(err, "allowed origins")
		}
		engine.Use(cors.New(corsCfg))
	}

	engine.GET("/healthz", healthHandler(logger, deps.Health))

	if deps.Movies != nil {
		engine.GET("/", deps.Movies.index)
		engine.GET("/movie/:title", deps.Movies.getMovie)
		engine.POST("/movie/:title", deps.Movies.postMovie)
		engine.GET("/person/:name", deps.Movies.getPerson)
	}

	return engine, nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		logger.Info("http request completed", attrs...)
	}
}
