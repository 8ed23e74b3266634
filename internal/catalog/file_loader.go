package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileLoader reads a JSON array of records from disk. It backs local
// development and the seed command.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Source() string { return "file" }

func (l *FileLoader) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(l.path)
}

// ReadFile decodes the catalog file at path.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
