package repository

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/moviegraph/moviegraph/internal/domain"
)

// properties extracts the property map of a node value. Records produced by
// the driver carry neo4j.Node values; projections and test doubles may use
// plain maps.
func properties(val any) (map[string]any, bool) {
	switch v := val.(type) {
	case neo4j.Node:
		return v.Props, true
	case *neo4j.Node:
		if v == nil {
			return nil, false
		}
		return v.Props, true
	case map[string]any:
		return v, true
	default:
		return nil, false
	}
}

func toMovie(val any) (domain.Movie, bool) {
	props, ok := properties(val)
	if !ok {
		return domain.Movie{}, false
	}
	return domain.Movie{
		Title: toString(props["title"]),
		Year:  toInt64(props["year"]),
		Stars: toInt64(props["stars"]),
	}, true
}

func toPerson(val any) (domain.Person, bool) {
	props, ok := properties(val)
	if !ok {
		return domain.Person{}, false
	}
	return domain.Person{Name: toString(props["name"])}, true
}

// toMovies decodes a collect() list. Null entries are skipped.
func toMovies(val any) []domain.Movie {
	items, _ := val.([]any)
	movies := make([]domain.Movie, 0, len(items))
	for _, item := range items {
		if m, ok := toMovie(item); ok {
			movies = append(movies, m)
		}
	}
	return movies
}

func toPeople(val any) []domain.Person {
	items, _ := val.([]any)
	people := make([]domain.Person, 0, len(items))
	for _, item := range items {
		if p, ok := toPerson(item); ok {
			people = append(people, p)
		}
	}
	return people
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
