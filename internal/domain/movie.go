package domain

// Movie is a read-through projection of a :Movie node.
type Movie struct {
	Title string `yaml:"title"`
	Year  int64  `yaml:"year"`
	Stars int64  `yaml:"stars"`
}

// Person is a read-through projection of a :Person node.
type Person struct {
	Name string `yaml:"name"`
}

// MovieDetail is a movie together with everyone who ACTED_IN it. Actors is
// empty, never nil, for a movie without cast.
type MovieDetail struct {
	Movie  Movie
	Actors []Person
}

// PersonDetail is a person together with every movie they ACTED_IN. Movies is
// empty, never nil, for a person without credits.
type PersonDetail struct {
	Person Person
	Movies []Movie
}
