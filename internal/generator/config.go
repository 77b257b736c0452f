package generator

// Config drives the synthetic data generator.
type Config struct {
	NumMovies int
	NumPeople int
	// MaxCast caps the number of actors per movie; every movie gets at least one.
	MaxCast int
	Seed    int64
}

// DefaultConfig returns settings producing a graph roughly the size of the
// classic movie sample database.
func DefaultConfig() Config {
	return Config{
		NumMovies: 40,
		NumPeople: 130,
		MaxCast:   6,
		Seed:      42,
	}
}
