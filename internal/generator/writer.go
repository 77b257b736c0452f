package generator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/moviegraph/moviegraph/internal/domain"
)

// WriteDataset serializes the dataset as YAML to path, creating parent
// directories as needed.
func WriteDataset(dataset domain.Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	return writeAndClose(file, path, dataset)
}

// writeAndClose encodes into file and closes it. A failed close is reported,
// since buffered data may not have reached the disk.
func writeAndClose(file io.WriteCloser, path string, dataset domain.Dataset) error {
	if err := EncodeDataset(file, dataset); err != nil {
		_ = file.Close()
		return errors.WithMessage(err, path)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}

// EncodeDataset writes the dataset as YAML to w.
func EncodeDataset(w io.Writer, dataset domain.Dataset) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(dataset); err != nil {
		return errors.Wrap(err, "encode dataset")
	}
	return encoder.Close()
}
