package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/moviegraph/moviegraph/internal/domain"
)

const (
	firstYear = 1950
	lastYear  = 2025
	maxStars  = 5
)

// Generator produces a synthetic movie graph: people, movies and casts.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments fragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = def.NumMovies
	}
	if cfg.NumPeople <= 0 {
		cfg.NumPeople = def.NumPeople
	}
	if cfg.MaxCast <= 0 {
		cfg.MaxCast = def.MaxCast
	}
	if cfg.MaxCast > cfg.NumPeople {
		cfg.MaxCast = cfg.NumPeople
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultFragments(),
	}
}

// Generate synthesises a dataset. Titles and names are unique, so the result
// can be seeded without collisions. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (domain.Dataset, error) {
	people := make([]domain.Person, g.cfg.NumPeople)
	names := make(map[string]struct{}, g.cfg.NumPeople)
	for i := range people {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		people[i] = domain.Person{Name: g.unique(names, g.randomName)}
	}

	movies := make([]domain.CastMovie, g.cfg.NumMovies)
	titles := make(map[string]struct{}, g.cfg.NumMovies)
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		movies[i] = domain.CastMovie{
			Movie: domain.Movie{
				Title: g.unique(titles, g.randomTitle),
				Year:  int64(firstYear + g.rand.Intn(lastYear-firstYear+1)),
				Stars: int64(g.rand.Intn(maxStars + 1)),
			},
			Actors: g.randomCast(people),
		}
	}

	return domain.Dataset{People: people, Movies: movies}, nil
}

// unique draws values until one is not in seen, falling back to numbered
// variants when the fragment space runs dry.
func (g *Generator) unique(seen map[string]struct{}, draw func() string) string {
	for attempt := 0; attempt < 8; attempt++ {
		v := draw()
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			return v
		}
	}
	base := draw()
	for n := 2; ; n++ {
		v := fmt.Sprintf("%s %d", base, n)
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			return v
		}
	}
}

func (g *Generator) randomCast(people []domain.Person) []string {
	size := 1 + g.rand.Intn(g.cfg.MaxCast)
	cast := make([]string, 0, size)
	for _, idx := range g.rand.Perm(len(people))[:size] {
		cast = append(cast, people[idx].Name)
	}
	return cast
}

func (g *Generator) randomName() string {
	return fmt.Sprintf("%s %s", g.pick(g.fragments.first), g.pick(g.fragments.last))
}

func (g *Generator) randomTitle() string {
	switch g.rand.Intn(3) {
	case 0:
		return fmt.Sprintf("The %s %s", g.pick(g.fragments.adjectives), g.pick(g.fragments.nouns))
	case 1:
		return fmt.Sprintf("%s of the %s", g.pick(g.fragments.nouns), g.pick(g.fragments.nouns))
	default:
		return fmt.Sprintf("%s %s", g.pick(g.fragments.adjectives), g.pick(g.fragments.nouns))
	}
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

type fragments struct {
	first      []string
	last       []string
	adjectives []string
	nouns      []string
}

func defaultFragments() fragments {
	return fragments{
		first:      []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:       []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		adjectives: []string{"Silent", "Crimson", "Last", "Hidden", "Broken", "Electric", "Midnight", "Golden", "Lost", "Infinite"},
		nouns:      []string{"Horizon", "Matrix", "River", "Empire", "Signal", "Garden", "Protocol", "Harbor", "Frontier", "Echo"},
	}
}
