package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/recordkit/pkg/logger"
	"github.com/dmitrymomot/recordkit/pkg/normalize"
	"github.com/dmitrymomot/recordkit/pkg/policy"
	"github.com/dmitrymomot/recordkit/pkg/record"
	"github.com/dmitrymomot/recordkit/pkg/recordcheck"
	"github.com/dmitrymomot/recordkit/pkg/source"
)

// Job describes one pipeline run.
type Job struct {
	Source        source.Source
	Path          string
	Policy        policy.Policy
	Normalize     []string // applied after the policy's own normalisers
	Sink          Sink     // nil validates without delivering
	Target        string   // empty selects the sink default
	FailOnInvalid bool
}

func (j Job) validate() error {
	switch {
	case j.Source == nil:
		return fmt.Errorf("%w: source is required", ErrInvalidJob)
	case j.Path == "":
		return fmt.Errorf("%w: path is required", ErrInvalidJob)
	case j.Policy.Name == "":
		return fmt.Errorf("%w: policy is required", ErrInvalidJob)
	}
	return nil
}

// Report summarises a run.
type Report struct {
	RunID          uuid.UUID          `json:"run_id"`
	Policy         string             `json:"policy"`
	Path           string             `json:"path"`
	Stage          Stage              `json:"stage"`
	RecordsRead    int                `json:"records_read"`
	RecordsWritten int                `json:"records_written"`
	Result         recordcheck.Result `json:"result"`
	Cached         bool               `json:"cached"`
	StartedAt      time.Time          `json:"started_at"`
	Duration       time.Duration      `json:"duration"`
}

// Verdict is the outcome of checking one batch against a policy.
type Verdict struct {
	Records []record.Record // normalised records the result refers to
	Result  recordcheck.Result
	Cached  bool
}

// Runner executes jobs.
type Runner struct {
	logger   *slog.Logger
	cache    VerdictCache
	cacheTTL time.Duration
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Runs log through a no-op logger by default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCache enables verdict caching with the given time to live.
func WithCache(cache VerdictCache, ttl time.Duration) Option {
	return func(r *Runner) {
		r.cache = cache
		r.cacheTTL = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator replaces uuid.New for run identifiers.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRunner builds a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger: logger.Discard(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads, normalises, validates and optionally delivers the job's records.
// The returned report is non-nil whenever the job itself is valid.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     r.newID(),
		Policy:    job.Policy.Name,
		Path:      job.Path,
		Stage:     StagePending,
		StartedAt: r.now(),
	}
	ctx = logger.WithRunID(ctx, report.RunID.String())
	log := r.logger.With(logger.Component("pipeline"), logger.Policy(job.Policy.Name))
	stages := NewTracker()

	finish := func(to Stage) error {
		if err := stages.Move(to); err != nil {
			return err
		}
		report.Stage = to
		report.Duration = r.now().Sub(report.StartedAt)
		return nil
	}

	records, err := source.Load(ctx, job.Source, job.Path)
	if err != nil {
		log.ErrorContext(ctx, "load failed", logger.Path(job.Path), logger.Error(err))
		return report, errors.Join(ErrLoadFailed, err, finish(StageFailed))
	}
	report.RecordsRead = len(records)
	if err := finish(StageLoaded); err != nil {
		return report, err
	}
	log.DebugContext(ctx, "records loaded", logger.Path(job.Path), logger.Records(len(records)))

	verdict, err := r.Check(ctx, job.Policy, records, job.Normalize...)
	if err != nil {
		return report, errors.Join(err, finish(StageFailed))
	}
	report.Result = verdict.Result
	report.Cached = verdict.Cached

	if !verdict.Result.Valid() {
		v := verdict.Result.Violation()
		log.WarnContext(ctx, "records rejected",
			logger.RecordIndex(v.Index),
			logger.Field(v.Field),
			logger.Reason(v.Reason),
		)
		if err := finish(StageRejected); err != nil {
			return report, err
		}
		if job.FailOnInvalid {
			return report, errors.Join(ErrRejected, verdict.Result.Err())
		}
		return report, nil
	}
	if err := finish(StageValidated); err != nil {
		return report, err
	}

	if job.Sink == nil {
		log.InfoContext(ctx, "records validated", logger.Records(len(records)))
		return report, nil
	}

	written, err := job.Sink.Write(ctx, job.Target, report.RunID, verdict.Records)
	report.RecordsWritten = written
	if err != nil {
		log.ErrorContext(ctx, "delivery failed", logger.Target(job.Target), logger.Error(err))
		return report, errors.Join(ErrDeliveryFailed, err, finish(StageFailed))
	}
	if err := finish(StageDelivered); err != nil {
		return report, err
	}

	log.InfoContext(ctx, "records delivered",
		logger.Target(job.Target),
		logger.Records(written),
		logger.Duration(report.Duration),
	)
	return report, nil
}

// Check normalises records with the policy's normalisers followed by extra,
// then validates them. Cached verdicts are used when a cache is configured.
func (r *Runner) Check(ctx context.Context, p policy.Policy, records []record.Record, extra ...string) (Verdict, error) {
	names := make([]string, 0, len(p.Normalize)+len(extra))
	names = append(names, p.Normalize...)
	names = append(names, extra...)

	fn, err := normalize.Chain(names...)
	if err != nil {
		return Verdict{}, errors.Join(ErrInvalidJob, err)
	}
	normalised := normalize.Records(records, fn)

	key := r.cacheKey(ctx, p.Name, normalised)
	if key != "" {
		res, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			return Verdict{Records: normalised, Result: res, Cached: true}, nil
		case !errors.Is(err, ErrCacheMiss):
			r.logger.WarnContext(ctx, "verdict cache read failed", logger.Error(err))
		}
	}

	res := p.Validate(normalised)

	if key != "" {
		if err := r.cache.Set(ctx, key, res, r.cacheTTL); err != nil {
			r.logger.WarnContext(ctx, "verdict cache write failed", logger.Error(err))
		}
	}
	return Verdict{Records: normalised, Result: res}, nil
}

func (r *Runner) cacheKey(ctx context.Context, policyName string, records []record.Record) string {
	if r.cache == nil {
		return ""
	}
	key, err := VerdictKey(policyName, records)
	if err != nil {
		r.logger.WarnContext(ctx, "verdict key failed", logger.Error(err))
		return ""
	}
	return key
}
