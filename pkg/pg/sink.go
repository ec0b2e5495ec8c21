package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// DefaultTable is created by Migrate and used when no target is given.
const DefaultTable = "validated_records"

var columns = []string{"run_id", "position", "payload"}

// Copier is the part of *pgxpool.Pool and pgx.Tx used by Sink.
type Copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Sink bulk-loads records with the COPY protocol. Each row stores the run id,
// the record position and the record as JSONB.
type Sink struct {
	db Copier
}

func NewSink(db Copier) *Sink {
	return &Sink{db: db}
}

// Write copies records into target, given as "table" or "schema.table".
// Names are quoted as identifiers, never interpolated into SQL.
func (s *Sink) Write(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error) {
	table, err := ParseIdentifier(target)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	run := [16]byte(runID)
	rows := pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
		payload, err := json.Marshal(records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		return []any{run, i, payload}, nil
	})

	n, err := s.db.CopyFrom(ctx, table, columns, rows)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return int(n), errors.Join(ErrDuplicateRun, err)
		}
		return int(n), errors.Join(ErrCopyFailed, err)
	}
	return int(n), nil
}

// ParseIdentifier splits "schema.table" into a pgx.Identifier. An empty name
// selects DefaultTable.
func ParseIdentifier(name string) (pgx.Identifier, error) {
	if strings.TrimSpace(name) == "" {
		return pgx.Identifier{DefaultTable}, nil
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, name)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, name)
		}
	}
	return pgx.Identifier(parts), nil
}
