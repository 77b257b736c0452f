package repository

import (
	"context"

	"github.com/moviegraph/moviegraph/internal/domain"
	"github.com/moviegraph/moviegraph/internal/graph"
)

// Repository runs each query operation in the transaction mode it needs:
// lookups in read transactions, mutations in write transactions.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// SearchMovies runs SearchMovies in a read transaction. The empty-term
// short-circuit happens inside the transaction, so no query is sent.
func (r *Repository) SearchMovies(ctx context.Context, term string) ([]domain.Movie, error) {
	return graph.Read(ctx, r.client, func(ctx context.Context, tx graph.Tx) ([]domain.Movie, error) {
		return SearchMovies(ctx, tx, term)
	})
}

// MovieWithCast runs FetchMovieWithCast in a read transaction.
func (r *Repository) MovieWithCast(ctx context.Context, title string) (*domain.MovieDetail, error) {
	return graph.Read(ctx, r.client, func(ctx context.Context, tx graph.Tx) (*domain.MovieDetail, error) {
		return FetchMovieWithCast(ctx, tx, title)
	})
}

// PersonWithFilmography runs FetchPersonWithFilmography in a read transaction.
func (r *Repository) PersonWithFilmography(ctx context.Context, name string) (*domain.PersonDetail, error) {
	return graph.Read(ctx, r.client, func(ctx context.Context, tx graph.Tx) (*domain.PersonDetail, error) {
		return FetchPersonWithFilmography(ctx, tx, name)
	})
}

// RateMovie runs SetMovieStars in a write transaction.
func (r *Repository) RateMovie(ctx context.Context, title, stars string) (bool, error) {
	return graph.Write(ctx, r.client, func(ctx context.Context, tx graph.Tx) (bool, error) {
		return SetMovieStars(ctx, tx, title, stars)
	})
}

// SaveMovie runs UpsertMovie in a write transaction.
func (r *Repository) SaveMovie(ctx context.Context, movie domain.Movie) error {
	_, err := r.client.WriteTransaction(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		return nil, UpsertMovie(ctx, tx, movie)
	})
	return err
}

// SavePerson runs UpsertPerson in a write transaction.
func (r *Repository) SavePerson(ctx context.Context, person domain.Person) error {
	_, err := r.client.WriteTransaction(ctx, func(ctx context.Context, tx graph.Tx) (any, error) {
		return nil, UpsertPerson(ctx, tx, person)
	})
	return err
}

// SaveRole runs LinkActor in a write transaction.
func (r *Repository) SaveRole(ctx context.Context, role domain.Role) (bool, error) {
	return graph.Write(ctx, r.client, func(ctx context.Context, tx graph.Tx) (bool, error) {
		return LinkActor(ctx, tx, role)
	})
}
