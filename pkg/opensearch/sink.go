package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// DefaultIndex is used when no target is given.
const DefaultIndex = "validated-records"

// Metadata fields added to every indexed document.
const (
	RunIDField    = "_run_id"
	PositionField = "_position"
)

// Sink indexes a batch with a single _bulk request. Document ids are
// "<run id>-<position>", so replaying a run overwrites instead of duplicating.
type Sink struct {
	transport opensearchapi.Transport
	refresh   string
}

// SinkOption configures a Sink.
type SinkOption func(*Sink)

// WithRefresh sets the bulk refresh parameter.
func WithRefresh(refresh string) SinkOption {
	return func(s *Sink) {
		s.refresh = refresh
	}
}

// NewSink builds a sink. *opensearch.Client satisfies opensearchapi.Transport.
func NewSink(transport opensearchapi.Transport, opts ...SinkOption) *Sink {
	s := &Sink{transport: transport}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type bulkAction struct {
	Index bulkMeta `json:"index"`
}

type bulkMeta struct {
	ID string `json:"_id"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

func (s *Sink) Write(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error) {
	index, err := indexName(target)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	body, err := BulkBody(runID, records)
	if err != nil {
		return 0, errors.Join(ErrBulkFailed, err)
	}

	res, err := opensearchapi.BulkRequest{
		Index:   index,
		Body:    bytes.NewReader(body),
		Refresh: s.refresh,
	}.Do(ctx, s.transport)
	if err != nil {
		return 0, errors.Join(ErrBulkFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return 0, errors.Join(ErrBulkFailed, fmt.Errorf("status %s", res.Status()))
	}

	var out bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, errors.Join(ErrBulkFailed, err)
	}

	written := 0
	var firstErr error
	for i, item := range out.Items {
		for _, result := range item {
			if result.Status >= 200 && result.Status < 300 {
				written++
				continue
			}
			if firstErr == nil {
				reason := fmt.Sprintf("status %d", result.Status)
				if result.Error != nil {
					reason = result.Error.Type + ": " + result.Error.Reason
				}
				firstErr = fmt.Errorf("%w: record %d: %s", ErrBulkRejected, i, reason)
			}
		}
	}
	if firstErr == nil && out.Errors {
		firstErr = ErrBulkRejected
	}
	return written, firstErr
}

// BulkBody renders the NDJSON payload of a _bulk request.
func BulkBody(runID uuid.UUID, records []record.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, rec := range records {
		action := bulkAction{Index: bulkMeta{ID: fmt.Sprintf("%s-%d", runID, i)}}
		if err := enc.Encode(action); err != nil {
			return nil, err
		}
		doc := rec.With(RunIDField, runID.String()).With(PositionField, i)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

func indexName(target string) (string, error) {
	name := strings.TrimSpace(target)
	if name == "" {
		return DefaultIndex, nil
	}
	if name != strings.ToLower(name) ||
		strings.ContainsAny(name, `\/*?"<>| ,#:`) ||
		strings.HasPrefix(name, "-") || strings.HasPrefix(name, "_") || strings.HasPrefix(name, "+") ||
		name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return name, nil
}
