package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dmitrymomot/recordkit/pkg/config"
	"github.com/dmitrymomot/recordkit/pkg/httpserver"
	"github.com/dmitrymomot/recordkit/pkg/logger"
	"github.com/dmitrymomot/recordkit/pkg/pipeline"
	"github.com/dmitrymomot/recordkit/pkg/policy"
	"github.com/dmitrymomot/recordkit/pkg/redis"
	"github.com/dmitrymomot/recordkit/pkg/source"
)

const serviceName = "recordkit"

// errRejected marks runs that finished with an invalid verdict.
var errRejected = errors.New("validation failed")

// app carries what commands share once flags and environment are resolved.
type app struct {
	cfg      appConfig
	stdout   io.Writer
	stderr   io.Writer
	log      *slog.Logger
	policies *policy.Registry
	checks   []httpserver.Check
	closers  []func()
}

func (a *app) init(envFiles []string) error {
	if len(envFiles) > 0 {
		if err := config.LoadEnv(envFiles...); err != nil {
			return err
		}
		config.ResetCache()
	}
	return config.ForceReloadConfig(&a.cfg)
}

func (a *app) setup() error {
	a.log = logger.New(
		logger.WithEnvironment(a.cfg.Env, serviceName),
		logger.WithLevelName(a.cfg.LogLevel),
		logger.WithOutput(a.stderr),
	)

	a.policies = policy.DefaultRegistry()
	for _, path := range a.cfg.PolicyFiles {
		p, err := a.policies.LoadFile(path)
		if err != nil {
			return fmt.Errorf("policy file %s: %w", path, err)
		}
		a.log.Debug("policy loaded", logger.Policy(p.Name), logger.Path(path))
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// runner builds a pipeline runner, with a Redis verdict cache when enabled.
func (a *app) runner(ctx context.Context) (*pipeline.Runner, error) {
	opts := []pipeline.Option{pipeline.WithLogger(a.log)}
	if a.cfg.Cache {
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
		opts = append(opts, pipeline.WithCache(redis.NewVerdictCache(client, rcfg.KeyPrefix), rcfg.VerdictTTL))
	}
	return pipeline.NewRunner(opts...), nil
}

// openSource resolves a CLI argument to a source and the path inside it.
// Local files are served from their own directory.
func (a *app) openSource(ctx context.Context, arg string) (source.Source, string, error) {
	switch a.cfg.Source {
	case "local", "":
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, "", err
		}
		src, err := source.NewLocal(filepath.Dir(abs))
		if err != nil {
			return nil, "", err
		}
		return src, filepath.Base(abs), nil
	case "s3":
		var scfg source.S3Config
		if err := config.Load(&scfg); err != nil {
			return nil, "", err
		}
		src, err := source.NewS3(ctx, scfg)
		if err != nil {
			return nil, "", err
		}
		return src, arg, nil
	default:
		return nil, "", fmt.Errorf("unknown source %q: use local or s3", a.cfg.Source)
	}
}
