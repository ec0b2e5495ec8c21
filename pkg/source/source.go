package source

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// Source opens record files by path.
type Source interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Load opens path on src and decodes it according to its extension.
func Load(ctx context.Context, src Source, path string) ([]record.Record, error) {
	format, err := record.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rc, err := src.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	records, err := record.Decode(format, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
