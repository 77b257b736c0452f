package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviegraph/moviegraph/internal/domain"
	"github.com/moviegraph/moviegraph/internal/graph"
	"github.com/moviegraph/moviegraph/internal/logging"
	"github.com/moviegraph/moviegraph/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStore struct {
	movies []domain.Movie
	movie  *domain.MovieDetail
	person *domain.PersonDetail
	err    error

	searched  []string
	rated     [][2]string
	rateMatch bool
}

func (s *stubStore) SearchMovies(_ context.Context, term string) ([]domain.Movie, error) {
	s.searched = append(s.searched, term)
	if s.err != nil {
		return nil, s.err
	}
	if term == "" {
		return []domain.Movie{}, nil
	}
	return s.movies, nil
}

func (s *stubStore) MovieWithCast(context.Context, string) (*domain.MovieDetail, error) {
	return s.movie, s.err
}

func (s *stubStore) PersonWithFilmography(context.Context, string) (*domain.PersonDetail, error) {
	return s.person, s.err
}

func (s *stubStore) RateMovie(_ context.Context, title, stars string) (bool, error) {
	s.rated = append(s.rated, [2]string{title, stars})
	if s.err != nil {
		return false, s.err
	}
	if _, err := repository.ParseStars(stars); err != nil {
		return false, err
	}
	return s.rateMatch, nil
}

type recordingRenderer struct {
	name string
	data gin.H
}

func (r *recordingRenderer) Instance(name string, data any) render.Render {
	r.name = name
	r.data, _ = data.(gin.H)
	return render.Data{ContentType: "text/html; charset=utf-8", Data: []byte(name)}
}

func newTestRouter(t *testing.T, store Store, health HealthService) (*gin.Engine, *recordingRenderer) {
	t.Helper()
	rec := &recordingRenderer{}
	logger := logging.Discard()
	router, err := NewRouter(logger, RouterDependencies{
		Health:   health,
		Movies:   NewMovieHandlers(logger, store),
		Renderer: rec,
	})
	require.NoError(t, err)
	return router, rec
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func postStars(path, stars string) *http.Request {
	form := url.Values{"stars": {stars}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndex_NoQuery(t *testing.T) {
	store := &stubStore{}
	router, rec := newTestRouter(t, store, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pageIndex, rec.name)
	assert.Equal(t, []domain.Movie{}, rec.data["movies"])
	assert.Equal(t, "", rec.data["q"])
}

func TestIndex_Search(t *testing.T) {
	store := &stubStore{movies: []domain.Movie{
		{Title: "The Matrix Reloaded", Year: 2003},
		{Title: "The Matrix", Year: 1999},
	}}
	router, rec := newTestRouter(t, store, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/?q=matrix", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"matrix"}, store.searched)
	assert.Equal(t, gin.H{"movies": store.movies, "q": "matrix"}, rec.data)
}

func TestGetMovie(t *testing.T) {
	detail := &domain.MovieDetail{
		Movie:  domain.Movie{Title: "The Matrix", Year: 1999, Stars: 4},
		Actors: []domain.Person{{Name: "Keanu Reeves"}},
	}
	router, rec := newTestRouter(t, &stubStore{movie: detail}, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/movie/The%20Matrix", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pageMovie, rec.name)
	assert.Equal(t, gin.H{"movie": detail.Movie, "actors": detail.Actors}, rec.data)
}

func TestGetMovie_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{}, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/movie/Nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Movie not found", rr.Body.String())
}

func TestGetPerson(t *testing.T) {
	detail := &domain.PersonDetail{
		Person: domain.Person{Name: "Keanu Reeves"},
		Movies: []domain.Movie{{Title: "The Matrix", Year: 1999}},
	}
	router, rec := newTestRouter(t, &stubStore{person: detail}, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/person/Keanu%20Reeves", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pagePerson, rec.name)
	assert.Equal(t, gin.H{"person": detail.Person, "movies": detail.Movies}, rec.data)
}

func TestGetPerson_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{}, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/person/Nobody", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Person not found", rr.Body.String())
}

func TestPostMovie_RedirectsToSameURL(t *testing.T) {
	store := &stubStore{rateMatch: true}
	router, _ := newTestRouter(t, store, nil)

	rr := serve(router, postStars("/movie/The%20Matrix", "4"))

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/movie/The%20Matrix", rr.Header().Get("Location"))
	assert.Equal(t, [][2]string{{"The Matrix", "4"}}, store.rated)
}

func TestPostMovie_MissingMovieStillRedirects(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{}, nil)

	rr := serve(router, postStars("/movie/Nonexistent", "3"))

	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestPostMovie_InvalidRating(t *testing.T) {
	for _, stars := range []string{"abc", "", "4.5"} {
		t.Run(stars, func(t *testing.T) {
			router, _ := newTestRouter(t, &stubStore{}, nil)

			rr := serve(router, postStars("/movie/The%20Matrix", stars))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "Invalid rating", rr.Body.String())
		})
	}
}

func TestSlashInTitleStaysInOneSegment(t *testing.T) {
	store := &stubStore{rateMatch: true}
	router, _ := newTestRouter(t, store, nil)

	rr := serve(router, postStars("/movie/AC%2FDC", "5"))

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, [][2]string{{"AC/DC", "5"}}, store.rated)
	assert.Equal(t, "/movie/AC%2FDC", rr.Header().Get("Location"))
}

func TestDatabaseErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "unavailable",
			err:    &graph.Error{Kind: graph.ErrDatabaseUnavailable, Err: errors.New("connection refused")},
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "query",
			err:    errors.Wrap(&graph.Error{Kind: graph.ErrQueryExecution, Err: errors.New("syntax")}, "search movies"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newTestRouter(t, &stubStore{err: tc.err}, nil)

			for _, req := range []*http.Request{
				httptest.NewRequest(http.MethodGet, "/?q=matrix", nil),
				httptest.NewRequest(http.MethodGet, "/movie/The%20Matrix", nil),
				httptest.NewRequest(http.MethodGet, "/person/Keanu%20Reeves", nil),
				postStars("/movie/The%20Matrix", "4"),
			} {
				rr := serve(router, req)
				assert.Equal(t, tc.status, rr.Code, req.Method+" "+req.URL.String())
				assert.NotContains(t, rr.Body.String(), "syntax")
			}
		})
	}
}

type probeFunc func(ctx context.Context) error

func (f probeFunc) Probe(ctx context.Context) error { return f(ctx) }

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{}, GraphHealthService{Client: graph.NewMemoryClient(), Logger: logging.Discard()})

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","graph":"up"}`, rr.Body.String())
}

func TestHealthz_Degraded(t *testing.T) {
	mem := graph.NewMemoryClient().WithConnectivityError(errors.New("bolt down: dial tcp 10.0.0.7:7687"))
	router, _ := newTestRouter(t, &stubStore{}, GraphHealthService{Client: mem, Logger: logging.Discard()})

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded","graph":"unavailable"}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "bolt down")
	assert.NotContains(t, rr.Body.String(), "10.0.0.7")
}

func TestHealthz_UnexpectedProbeError(t *testing.T) {
	router, _ := newTestRouter(t, &stubStore{}, probeFunc(func(context.Context) error {
		return errors.New("secret detail")
	}))

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded","graph":"error"}`, rr.Body.String())
}

func TestGraphHealthService_HidesDriverCause(t *testing.T) {
	cause := errors.New("connection refused")
	svc := GraphHealthService{Client: graph.NewMemoryClient().WithConnectivityError(cause), Logger: logging.Discard()}

	err := svc.Probe(context.Background())

	require.ErrorIs(t, err, graph.ErrDatabaseUnavailable)
	assert.NotErrorIs(t, err, cause)
	assert.NoError(t, GraphHealthService{}.Probe(context.Background()))
}

func TestNewRouter_RejectsOriginWithoutScheme(t *testing.T) {
	logger := logging.Discard()

	require.NotPanics(t, func() {
		_, err := NewRouter(logger, RouterDependencies{
			Movies:         NewMovieHandlers(logger, &stubStore{}),
			Renderer:       &recordingRenderer{},
			AllowedOrigins: []string{"frontend.test"},
		})
		assert.Error(t, err)
	})
}

func TestCORS(t *testing.T) {
	logger := logging.Discard()
	router, err := NewRouter(logger, RouterDependencies{
		Movies:         NewMovieHandlers(logger, &stubStore{}),
		Renderer:       &recordingRenderer{},
		AllowedOrigins: []string{"http://frontend.test"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://frontend.test")
	rr := serve(router, req)

	assert.Equal(t, "http://frontend.test", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestEndToEnd_RenderedPages(t *testing.T) {
	matrix := neo4j.Node{Labels: []string{"Movie"}, Props: map[string]any{"title": "The Matrix", "year": int64(1999), "stars": int64(4)}}
	keanu := neo4j.Node{Labels: []string{"Person"}, Props: map[string]any{"name": "Keanu Reeves"}}
	mem := graph.NewMemoryClient().
		PushReadResult(graph.Result{Records: []graph.Record{{"movie": matrix, "actors": []any{keanu}}}}).
		PushReadResult(graph.Result{Records: []graph.Record{{"person": keanu, "movies": []any{matrix}}}})

	logger := logging.Discard()
	router, err := NewRouter(logger, RouterDependencies{
		Movies: NewMovieHandlers(logger, repository.New(mem)),
	})
	require.NoError(t, err)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/movie/The%20Matrix", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<h1>The Matrix</h1>")
	assert.Contains(t, body, `href="/person/Keanu%20Reeves"`)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/person/Keanu%20Reeves", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/movie/The%20Matrix"`)

	rr = serve(router, postStars("/movie/The%20Matrix", "nope"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, mem.WriteCalls())
}

func TestRenderedSearchEscapesInput(t *testing.T) {
	logger := logging.Discard()
	router, err := NewRouter(logger, RouterDependencies{
		Movies: NewMovieHandlers(logger, &stubStore{movies: []domain.Movie{{Title: "<b>Bold</b>", Year: 2001}}}),
	})
	require.NoError(t, err)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/?q=%3Cscript%3E", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>Bold</b>")
	assert.Contains(t, body, "&lt;b&gt;Bold&lt;/b&gt;")
}
