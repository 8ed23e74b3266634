package catalog

import "context"

// Loader fetches the full set of catalog records from one backing source.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)
	Source() string
}
