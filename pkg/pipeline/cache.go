package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/dmitrymomot/recordkit/pkg/record"
	"github.com/dmitrymomot/recordkit/pkg/recordcheck"
)

// VerdictCache stores validation results keyed by VerdictKey.
// Get returns ErrCacheMiss when nothing is stored under key.
type VerdictCache interface {
	Get(ctx context.Context, key string) (recordcheck.Result, error)
	Set(ctx context.Context, key string, res recordcheck.Result, ttl time.Duration) error
}

// VerdictKey hashes the policy name together with the JSON form of records.
// Records keep field order, so equal batches always produce the same key.
func VerdictKey(policy string, records []record.Record) (string, error) {
	h := sha256.New()
	h.Write([]byte(policy))
	h.Write([]byte{0})
	if err := json.NewEncoder(h).Encode(records); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
