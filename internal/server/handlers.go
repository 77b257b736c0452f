package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/moviegraph/moviegraph/internal/domain"
	"github.com/moviegraph/moviegraph/internal/graph"
	"github.com/moviegraph/moviegraph/internal/repository"
)

// Store is the data access the page handlers depend on.
type Store interface {
	SearchMovies(ctx context.Context, term string) ([]domain.Movie, error)
	MovieWithCast(ctx context.Context, title string) (*domain.MovieDetail, error)
	PersonWithFilmography(ctx context.Context, name string) (*domain.PersonDetail, error)
	RateMovie(ctx context.Context, title, stars string) (bool, error)
}

// MovieHandlers serves the search, movie and person pages.
type MovieHandlers struct {
	store  Store
	logger *slog.Logger
}

// NewMovieHandlers wires the page handlers to a store.
func NewMovieHandlers(logger *slog.Logger, store Store) *MovieHandlers {
	return &MovieHandlers{store: store, logger: logger}
}

func (h *MovieHandlers) index(c *gin.Context) {
	q := c.Query("q")
	movies, err := h.store.SearchMovies(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "search movies failed", "q", q)
		return
	}
	c.HTML(http.StatusOK, pageIndex, gin.H{
		"movies": movies,
		"q":      q,
	})
}

func (h *MovieHandlers) getMovie(c *gin.Context) {
	title := c.Param("title")
	detail, err := h.store.MovieWithCast(c.Request.Context(), title)
	if err != nil {
		h.fail(c, err, "fetch movie failed", "title", title)
		return
	}
	if detail == nil {
		c.String(http.StatusNotFound, "Movie not found")
		return
	}
	c.HTML(http.StatusOK, pageMovie, gin.H{
		"movie":  detail.Movie,
		"actors": detail.Actors,
	})
}

func (h *MovieHandlers) postMovie(c *gin.Context) {
	title := c.Param("title")
	matched, err := h.store.RateMovie(c.Request.Context(), title, c.PostForm("stars"))
	if err != nil {
		h.fail(c, err, "rate movie failed", "title", title)
		return
	}
	if !matched {
		h.logger.Debug("rating matched no movie", "title", title)
	}
	// Same URL, so the browser re-fetches the page with a GET.
	c.Redirect(http.StatusFound, c.Request.URL.RequestURI())
}

func (h *MovieHandlers) getPerson(c *gin.Context) {
	name := c.Param("name")
	detail, err := h.store.PersonWithFilmography(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err, "fetch person failed", "name", name)
		return
	}
	if detail == nil {
		c.String(http.StatusNotFound, "Person not found")
		return
	}
	c.HTML(http.StatusOK, pagePerson, gin.H{
		"person": detail.Person,
		"movies": detail.Movies,
	})
}

func (h *MovieHandlers) fail(c *gin.Context, err error, msg string, attrs ...any) {
	_ = c.Error(err)
	if errors.Is(err, repository.ErrInvalidRating) {
		c.String(http.StatusBadRequest, "Invalid rating")
		c.Abort()
		return
	}

	status := http.StatusInternalServerError
	if errors.Is(err, graph.ErrDatabaseUnavailable) {
		status = http.StatusServiceUnavailable
	}
	h.logger.Error(msg, append(attrs, "error", err)...)
	c.String(status, http.StatusText(status))
	c.Abort()
}
