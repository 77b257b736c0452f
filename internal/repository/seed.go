package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/moviegraph/moviegraph/internal/domain"
	"github.com/moviegraph/moviegraph/internal/graph"
)

// UpsertMovie ensures a movie node exists with the given year. An existing
// rating is kept; movie.Stars only seeds movies that have none.
func UpsertMovie(ctx context.Context, tx graph.Tx, movie domain.Movie) error {
	if movie.Title == "" {
		return errors.New("movie title is required")
	}
	_, err := tx.Run(ctx, upsertMovieCypher, map[string]any{
		"title": movie.Title,
		"year":  movie.Year,
		"stars": movie.Stars,
	})
	if err != nil {
		return errors.Wrapf(err, "upsert movie %q", movie.Title)
	}
	return nil
}

// UpsertPerson ensures a person node exists.
func UpsertPerson(ctx context.Context, tx graph.Tx, person domain.Person) error {
	if person.Name == "" {
		return errors.New("person name is required")
	}
	_, err := tx.Run(ctx, upsertPersonCypher, map[string]any{"name": person.Name})
	if err != nil {
		return errors.Wrapf(err, "upsert person %q", person.Name)
	}
	return nil
}

// LinkActor ensures an ACTED_IN edge between an existing person and movie.
// It reports whether both endpoints were found.
func LinkActor(ctx context.Context, tx graph.Tx, role domain.Role) (bool, error) {
	res, err := tx.Run(ctx, linkActorCypher, map[string]any{
		"name":  role.Actor,
		"title": role.Title,
	})
	if err != nil {
		return false, errors.Wrapf(err, "link %q to %q", role.Actor, role.Title)
	}
	return len(res.Records) > 0, nil
}
