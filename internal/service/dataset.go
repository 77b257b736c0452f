package service

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/moviegraph/moviegraph/internal/domain"
)

// ErrEmptyDataset is returned for a dataset with neither movies nor people.
var ErrEmptyDataset = errors.New("dataset is empty")

// LoadDataset decodes a YAML dataset file and validates it.
func LoadDataset(path string) (domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	var dataset domain.Dataset
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&dataset); err != nil {
		return domain.Dataset{}, errors.Wrapf(err, "decode %s", path)
	}
	if err := ValidateDataset(dataset); err != nil {
		return domain.Dataset{}, errors.WithMessage(err, path)
	}
	return dataset, nil
}

// ValidateDataset checks that every movie has a title, every person a name,
// and every listed actor is declared under people.
func ValidateDataset(dataset domain.Dataset) error {
	if len(dataset.Movies) == 0 && len(dataset.People) == 0 {
		return ErrEmptyDataset
	}

	people := make(map[string]struct{}, len(dataset.People))
	for i, p := range dataset.People {
		if p.Name == "" {
			return errors.Errorf("people[%d]: name is required", i)
		}
		people[p.Name] = struct{}{}
	}
	for i, m := range dataset.Movies {
		if m.Title == "" {
			return errors.Errorf("movies[%d]: title is required", i)
		}
		for _, actor := range m.Actors {
			if _, ok := people[actor]; !ok {
				return errors.Errorf("movies[%d] %q: actor %q is not listed under people", i, m.Title, actor)
			}
		}
	}
	return nil
}
