package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/recordkit/pkg/httpserver"
	"github.com/dmitrymomot/recordkit/pkg/logger"
	"github.com/dmitrymomot/recordkit/pkg/normalize"
	"github.com/dmitrymomot/recordkit/pkg/pipeline"
	"github.com/dmitrymomot/recordkit/pkg/policy"
	"github.com/dmitrymomot/recordkit/pkg/record"
)

// DefaultMaxBodyBytes limits validate request bodies.
const DefaultMaxBodyBytes = 32 << 20

// API serves the HTTP endpoints.
type API struct {
	policies *policy.Registry
	runner   *pipeline.Runner
	logger   *slog.Logger
	maxBody  int64
	checks   []httpserver.Check
}

// Option configures an API.
type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMaxBodyBytes limits the size of validate request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

// WithHealthChecks adds readiness probes to /healthz.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(a *API) {
		a.checks = append(a.checks, checks...)
	}
}

// New builds an API over the registry. A nil runner gets a default one.
func New(policies *policy.Registry, runner *pipeline.Runner, opts ...Option) *API {
	a := &API{
		policies: policies,
		runner:   runner,
		logger:   logger.Discard(),
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.runner == nil {
		a.runner = pipeline.NewRunner(pipeline.WithLogger(a.logger))
	}
	return a
}

// Router returns the chi router serving every endpoint.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RunID)

	r.Get("/healthz", httpserver.HealthCheckHandler(a.logger, a.checks...))
	r.Route("/v1/policies", func(r chi.Router) {
		r.Get("/", a.listPolicies)
		r.Get("/{name}", a.getPolicy)
		r.Post("/{name}/validate", a.validate)
	})
	return r
}

type predicateView struct {
	Name  string `json:"name"`
	Field string `json:"field"`
}

type policyView struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Normalize   []string        `json:"normalize,omitempty"`
	Predicates  []predicateView `json:"predicates"`
}

func viewOf(p policy.Policy) policyView {
	v := policyView{
		Name:        p.Name,
		Description: p.Description,
		Normalize:   p.Normalize,
		Predicates:  make([]predicateView, 0, len(p.Predicates)),
	}
	for _, pred := range p.Predicates {
		if pred == nil {
			continue
		}
		v.Predicates = append(v.Predicates, predicateView{Name: pred.Name(), Field: pred.Field()})
	}
	return v
}

func (a *API) listPolicies(w http.ResponseWriter, r *http.Request) {
	names := a.policies.Names()
	out := make([]policyView, 0, len(names))
	for _, name := range names {
		p, err := a.policies.Get(name)
		if err != nil {
			continue
		}
		out = append(out, viewOf(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := a.policies.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(p))
}

func (a *API) validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := a.policies.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	format, err := requestFormat(r)
	if err != nil {
		writeError(w, http.StatusUnsupportedMediaType, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	records, err := record.Decode(format, bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	verdict, err := a.runner.Check(ctx, p, records, splitList(r.URL.Query().Get("normalize"))...)
	if err != nil {
		if errors.Is(err, normalize.ErrUnknownNormalizer) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		a.logger.ErrorContext(ctx, "validation failed", logger.Policy(p.Name), logger.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if !verdict.Result.Valid() {
		v := verdict.Result.Violation()
		a.logger.InfoContext(ctx, "records rejected",
			logger.Policy(p.Name),
			logger.RecordIndex(v.Index),
			logger.Field(v.Field),
			logger.Reason(v.Reason),
		)
		writeJSON(w, http.StatusUnprocessableEntity, verdict.Result)
		return
	}
	writeJSON(w, http.StatusOK, verdict.Result)
}

func requestFormat(r *http.Request) (record.Format, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return record.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Join(ErrUnsupportedMediaType, err)
	}
	switch mediaType {
	case "application/json", "text/json":
		return record.FormatJSON, nil
	case "application/x-ndjson", "application/jsonl":
		return record.FormatNDJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return record.FormatYAML, nil
	}
	return "", ErrUnsupportedMediaType
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
