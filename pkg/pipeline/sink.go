package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// Sink delivers validated records to a destination such as a table, a
// collection or an index. It returns the number of records written.
type Sink interface {
	Write(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error)

func (f SinkFunc) Write(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error) {
	return f(ctx, target, runID, records)
}
