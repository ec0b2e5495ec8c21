package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// DefaultCollection is used when no target is given.
const DefaultCollection = "validated_records"

// Metadata fields added to every stored document.
const (
	RunIDField    = "_run_id"
	PositionField = "_position"
)

// Inserter is the part of *mongo.Collection used by Sink.
type Inserter interface {
	InsertMany(ctx context.Context, documents any, opts ...options.Lister[options.InsertManyOptions]) (*mongo.InsertManyResult, error)
}

// CollectionFunc resolves a collection by name.
type CollectionFunc func(name string) Inserter

// Sink inserts records as documents, one ordered InsertMany per batch.
type Sink struct {
	collection CollectionFunc
}

// NewSink writes into collections of db.
func NewSink(db *mongo.Database) *Sink {
	return NewSinkFunc(func(name string) Inserter {
		return db.Collection(name)
	})
}

// NewSinkFunc writes into collections returned by fn.
func NewSinkFunc(fn CollectionFunc) *Sink {
	return &Sink{collection: fn}
}

func (s *Sink) Write(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error) {
	name, err := collectionName(target)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = Document(runID, i, rec)
	}

	res, err := s.collection(name).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	written := 0
	if res != nil {
		written = len(res.InsertedIDs)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return written, errors.Join(ErrDuplicateRun, err)
		}
		return written, errors.Join(ErrInsertFailed, err)
	}
	return written, nil
}

// Document converts a record into a bson.D that keeps field order and
// carries the run id and position.
func Document(runID uuid.UUID, position int, rec record.Record) bson.D {
	doc := make(bson.D, 0, rec.Len()+2)
	doc = append(doc,
		bson.E{Key: RunIDField, Value: runID.String()},
		bson.E{Key: PositionField, Value: position},
	)
	for _, key := range rec.Keys() {
		v, _ := rec.Get(key)
		doc = append(doc, bson.E{Key: key, Value: toBSON(v)})
	}
	return doc
}

func toBSON(v any) any {
	switch val := v.(type) {
	case record.Record:
		doc := make(bson.D, 0, val.Len())
		for _, key := range val.Keys() {
			inner, _ := val.Get(key)
			doc = append(doc, bson.E{Key: key, Value: toBSON(inner)})
		}
		return doc
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := make(bson.D, 0, len(val))
		for _, k := range keys {
			doc = append(doc, bson.E{Key: k, Value: toBSON(val[k])})
		}
		return doc
	case []any:
		arr := make(bson.A, len(val))
		for i, item := range val {
			arr[i] = toBSON(item)
		}
		return arr
	default:
		return v
	}
}

func collectionName(target string) (string, error) {
	name := strings.TrimSpace(target)
	switch {
	case name == "":
		return DefaultCollection, nil
	case strings.ContainsAny(name, "$\x00"), strings.HasPrefix(name, "system."):
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return name, nil
}
