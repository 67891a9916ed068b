package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Options mirror config.CatalogConfig
type Options struct {
	Source  string
	Path    string
	URL     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Load returns the catalog from the configured source
func Load(ctx context.Context, opts Options) (*Catalog, error) {
	switch opts.Source {
	case "", "embedded":
		return Embedded()
	case "file":
		return LoadFile(opts.Path)
	case "remote":
		institutions, err := NewClient(opts.URL, opts.Timeout, opts.Logger).Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return New(institutions), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", opts.Source)
	}
}
