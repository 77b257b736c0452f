package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/moviegraph/moviegraph/internal/domain"
	"github.com/moviegraph/moviegraph/internal/graph"
)

// ErrInvalidRating is returned when a star rating is not an integer.
var ErrInvalidRating = errors.New("invalid rating")

// SearchMovies returns the movies whose title contains term, ignoring case,
// newest first and then by title. An empty term matches nothing and issues no
// query.
func SearchMovies(ctx context.Context, tx graph.Tx, term string) ([]domain.Movie, error) {
	if term == "" {
		return []domain.Movie{}, nil
	}

	res, err := tx.Run(ctx, searchMoviesCypher, map[string]any{"term": term})
	if err != nil {
		return nil, errors.Wrapf(err, "search movies %q", term)
	}

	movies := make([]domain.Movie, 0, len(res.Records))
	for _, record := range res.Records {
		if m, ok := toMovie(record["movie"]); ok {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

// FetchMovieWithCast looks a movie up by exact title along with its actors.
// It returns nil when no movie has that title.
func FetchMovieWithCast(ctx context.Context, tx graph.Tx, title string) (*domain.MovieDetail, error) {
	res, err := tx.Run(ctx, movieWithCastCypher, map[string]any{"title": title})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch movie %q", title)
	}
	if len(res.Records) == 0 {
		return nil, nil
	}

	record := res.Records[0]
	movie, ok := toMovie(record["movie"])
	if !ok {
		return nil, nil
	}
	return &domain.MovieDetail{
		Movie:  movie,
		Actors: toPeople(record["actors"]),
	}, nil
}

// FetchPersonWithFilmography looks a person up by exact name along with the
// movies they acted in. It returns nil when no person has that name.
func FetchPersonWithFilmography(ctx context.Context, tx graph.Tx, name string) (*domain.PersonDetail, error) {
	res, err := tx.Run(ctx, personWithFilmographyCypher, map[string]any{"name": name})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch person %q", name)
	}
	if len(res.Records) == 0 {
		return nil, nil
	}

	record := res.Records[0]
	person, ok := toPerson(record["person"])
	if !ok {
		return nil, nil
	}
	return &domain.PersonDetail{
		Person: person,
		Movies: toMovies(record["movies"]),
	}, nil
}

// SetMovieStars sets the star rating of the movie with the given title. The
// rating is parsed before anything is sent to the database. It reports
// whether a movie matched; a missing movie is not an error.
func SetMovieStars(ctx context.Context, tx graph.Tx, title, stars string) (bool, error) {
	value, err := ParseStars(stars)
	if err != nil {
		return false, err
	}

	res, err := tx.Run(ctx, setMovieStarsCypher, map[string]any{
		"title": title,
		"stars": value,
	})
	if err != nil {
		return false, errors.Wrapf(err, "set stars of %q", title)
	}
	return len(res.Records) > 0, nil
}

// ParseStars converts user-supplied rating text to an integer. Surrounding
// whitespace is ignored; anything else that is not a base-10 integer is
// rejected with ErrInvalidRating.
func ParseStars(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidRating, "%q", raw)
	}
	return value, nil
}
