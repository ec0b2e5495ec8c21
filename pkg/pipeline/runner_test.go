package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recordkit/pkg/logger"
	"github.com/dmitrymomot/recordkit/pkg/pipeline"
	"github.com/dmitrymomot/recordkit/pkg/policy"
	"github.com/dmitrymomot/recordkit/pkg/record"
	"github.com/dmitrymomot/recordkit/pkg/recordcheck"
	"github.com/dmitrymomot/recordkit/pkg/source"
)

type memSource map[string]string

func (m memSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := m[path]
	if !ok {
		return nil, source.ErrNotFound
	}
	return io.NopCloser(bytes.NewBufferString(data)), nil
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Write(ctx context.Context, target string, runID uuid.UUID, records []record.Record) (int, error) {
	args := m.Called(ctx, target, runID, records)
	return args.Int(0), args.Error(1)
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]recordcheck.Result
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]recordcheck.Result{}}
}

func (c *memCache) Get(_ context.Context, key string) (recordcheck.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[key]
	if !ok {
		return recordcheck.Result{}, pipeline.ErrCacheMiss
	}
	return res, nil
}

func (c *memCache) Set(_ context.Context, key string, res recordcheck.Result, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
	c.sets++
	return nil
}

var fixedID = uuid.MustParse("7f1c3a9e-2b4d-4e5f-8a6b-1c2d3e4f5a6b")

func newRunner(opts ...pipeline.Option) *pipeline.Runner {
	base := []pipeline.Option{
		pipeline.WithLogger(logger.Discard()),
		pipeline.WithIDGenerator(func() uuid.UUID { return fixedID }),
	}
	return pipeline.NewRunner(append(base, opts...)...)
}

var files = memSource{
	"ok.json":       `[{"ethics_approve": "safe"}, {"ethics_approve": "reviewed"}]`,
	"missing.json":  `[{"ethics_approve": "safe"}, {}]`,
	"rejected.json": `[{"ethics_approve": "unsafe"}]`,
	"messy.json":    `[{"ethics_approve": "  SAFE "}]`,
	"broken.json":   `[{"ethics_approve": `,
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("validate only", func(t *testing.T) {
		report, err := newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "ok.json",
			Policy: policy.EthicsApproval(),
		})
		require.NoError(t, err)
		assert.Equal(t, fixedID, report.RunID)
		assert.Equal(t, pipeline.StageValidated, report.Stage)
		assert.Equal(t, 2, report.RecordsRead)
		assert.Zero(t, report.RecordsWritten)
		assert.True(t, report.Result.Valid())
	})

	t.Run("delivers valid records", func(t *testing.T) {
		sink := &MockSink{}
		sink.On("Write", mock.Anything, "public.approvals", fixedID, mock.MatchedBy(func(recs []record.Record) bool {
			return len(recs) == 2
		})).Return(2, nil).Once()

		report, err := newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "ok.json",
			Policy: policy.EthicsApproval(),
			Sink:   sink,
			Target: "public.approvals",
		})
		require.NoError(t, err)
		assert.Equal(t, pipeline.StageDelivered, report.Stage)
		assert.Equal(t, 2, report.RecordsWritten)
		sink.AssertExpectations(t)
	})

	t.Run("empty target is left to the sink", func(t *testing.T) {
		sink := &MockSink{}
		sink.On("Write", mock.Anything, "", fixedID, mock.Anything).Return(2, nil).Once()

		report, err := newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "ok.json",
			Policy: policy.EthicsApproval(),
			Sink:   sink,
		})
		require.NoError(t, err)
		assert.Equal(t, pipeline.StageDelivered, report.Stage)
		assert.Equal(t, 2, report.RecordsWritten)
		sink.AssertExpectations(t)
	})

	t.Run("missing field is rejected without delivery", func(t *testing.T) {
		sink := &MockSink{}
		report, err := newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "missing.json",
			Policy: policy.EthicsApproval(),
			Sink:   sink,
			Target: "public.approvals",
		})
		require.NoError(t, err)
		assert.Equal(t, pipeline.StageRejected, report.Stage)
		require.False(t, report.Result.Valid())
		assert.Equal(t, 1, report.Result.Violation().Index)
		assert.Equal(t, "ethics_approve", report.Result.Violation().Field)
		assert.True(t, recordcheck.IsMissingField(report.Result.Err()))
		sink.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fail on invalid returns ErrRejected", func(t *testing.T) {
		report, err := newRunner().Run(ctx, pipeline.Job{
			Source:        files,
			Path:          "rejected.json",
			Policy:        policy.EthicsApproval(),
			FailOnInvalid: true,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, pipeline.ErrRejected)
		assert.True(t, recordcheck.IsInvalidValue(err))
		assert.Equal(t, pipeline.StageRejected, report.Stage)
	})

	t.Run("normalisers run before validation", func(t *testing.T) {
		sink := &MockSink{}
		sink.On("Write", mock.Anything, "approvals", fixedID, mock.MatchedBy(func(recs []record.Record) bool {
			v, _ := recs[0].Get("ethics_approve")
			return v == "safe"
		})).Return(1, nil).Once()

		report, err := newRunner().Run(ctx, pipeline.Job{
			Source:    files,
			Path:      "messy.json",
			Policy:    policy.EthicsApproval(),
			Normalize: []string{"trim", "lower"},
			Sink:      sink,
			Target:    "approvals",
		})
		require.NoError(t, err)
		assert.True(t, report.Result.Valid())
		sink.AssertExpectations(t)
	})

	t.Run("load failure", func(t *testing.T) {
		report, err := newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "absent.json",
			Policy: policy.EthicsApproval(),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, pipeline.ErrLoadFailed)
		assert.ErrorIs(t, err, source.ErrNotFound)
		assert.Equal(t, pipeline.StageFailed, report.Stage)

		_, err = newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "broken.json",
			Policy: policy.EthicsApproval(),
		})
		assert.ErrorIs(t, err, pipeline.ErrLoadFailed)
	})

	t.Run("delivery failure", func(t *testing.T) {
		boom := errors.New("connection reset")
		sink := pipeline.SinkFunc(func(context.Context, string, uuid.UUID, []record.Record) (int, error) {
			return 0, boom
		})
		report, err := newRunner().Run(ctx, pipeline.Job{
			Source: files,
			Path:   "ok.json",
			Policy: policy.EthicsApproval(),
			Sink:   sink,
			Target: "approvals",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, pipeline.ErrDeliveryFailed)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, pipeline.StageFailed, report.Stage)
	})

	t.Run("unknown normaliser", func(t *testing.T) {
		report, err := newRunner().Run(ctx, pipeline.Job{
			Source:    files,
			Path:      "ok.json",
			Policy:    policy.EthicsApproval(),
			Normalize: []string{"shout"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, pipeline.ErrInvalidJob)
		assert.Equal(t, pipeline.StageFailed, report.Stage)
	})

	t.Run("invalid jobs", func(t *testing.T) {
		jobs := []pipeline.Job{
			{Path: "ok.json", Policy: policy.EthicsApproval()},
			{Source: files, Policy: policy.EthicsApproval()},
			{Source: files, Path: "ok.json"},
		}
		for _, job := range jobs {
			report, err := newRunner().Run(ctx, job)
			assert.ErrorIs(t, err, pipeline.ErrInvalidJob)
			assert.Nil(t, report)
		}
	})

	t.Run("reports duration from clock", func(t *testing.T) {
		start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		calls := 0
		clock := func() time.Time {
			calls++
			return start.Add(time.Duration(calls-1) * time.Second)
		}
		report, err := newRunner(pipeline.WithClock(clock)).Run(ctx, pipeline.Job{
			Source: files,
			Path:   "ok.json",
			Policy: policy.EthicsApproval(),
		})
		require.NoError(t, err)
		assert.Equal(t, start, report.StartedAt)
		assert.Positive(t, report.Duration)
	})
}

func TestRunner_Check(t *testing.T) {
	ctx := context.Background()
	records, err := record.DecodeJSON(bytes.NewBufferString(`[{"ethics_approve": "safe"}]`))
	require.NoError(t, err)

	t.Run("caches verdicts", func(t *testing.T) {
		cache := newMemCache()
		r := newRunner(pipeline.WithCache(cache, time.Minute))

		first, err := r.Check(ctx, policy.EthicsApproval(), records)
		require.NoError(t, err)
		assert.False(t, first.Cached)
		assert.True(t, first.Result.Valid())

		second, err := r.Check(ctx, policy.EthicsApproval(), records)
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.True(t, second.Result.Valid())
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in, err := record.DecodeJSON(bytes.NewBufferString(`[{"ethics_approve": " SAFE "}]`))
		require.NoError(t, err)

		verdict, err := newRunner().Check(ctx, policy.EthicsApproval(), in, "trim", "lower")
		require.NoError(t, err)
		assert.True(t, verdict.Result.Valid())

		v, _ := in[0].Get("ethics_approve")
		assert.Equal(t, " SAFE ", v)
	})
}

func TestVerdictKey(t *testing.T) {
	a, err := record.DecodeJSON(bytes.NewBufferString(`[{"a": 1, "b": 2}]`))
	require.NoError(t, err)
	b, err := record.DecodeJSON(bytes.NewBufferString(`[{"b": 2, "a": 1}]`))
	require.NoError(t, err)

	k1, err := pipeline.VerdictKey("p", a)
	require.NoError(t, err)
	k2, err := pipeline.VerdictKey("p", a)
	require.NoError(t, err)
	k3, err := pipeline.VerdictKey("q", a)
	require.NoError(t, err)
	k4, err := pipeline.VerdictKey("p", b)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
	assert.Len(t, k1, 64)
}
