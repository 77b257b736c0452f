package domain

// CastMovie is a movie entry of a seed dataset along with its actor names.
type CastMovie struct {
	Movie  `yaml:",inline"`
	Actors []string `yaml:"actors,omitempty"`
}

// Role is a single ACTED_IN edge of a dataset.
type Role struct {
	Actor string
	Title string
}

// Dataset is the input of the seeder and the output of the generator.
type Dataset struct {
	People []Person    `yaml:"people"`
	Movies []CastMovie `yaml:"movies"`
}

// Roles flattens the dataset casts into ACTED_IN edges.
func (d Dataset) Roles() []Role {
	var roles []Role
	for _, m := range d.Movies {
		for _, name := range m.Actors {
			roles = append(roles, Role{Actor: name, Title: m.Title})
		}
	}
	return roles
}
