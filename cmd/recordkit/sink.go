package main

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/recordkit/pkg/config"
	"github.com/dmitrymomot/recordkit/pkg/mongo"
	"github.com/dmitrymomot/recordkit/pkg/opensearch"
	"github.com/dmitrymomot/recordkit/pkg/pg"
	"github.com/dmitrymomot/recordkit/pkg/pipeline"
)

// Sink names accepted by --sink.
const (
	sinkPostgres   = "pg"
	sinkMongo      = "mongo"
	sinkOpenSearch = "opensearch"
)

// openSink connects the configured sink and registers its cleanup on a.
func (a *app) openSink(ctx context.Context, name string) (pipeline.Sink, error) {
	switch name {
	case sinkPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		if a.cfg.Migrate {
			if err := pg.Migrate(ctx, pool, cfg, a.log); err != nil {
				return nil, err
			}
		}
		return pg.NewSink(pool), nil

	case sinkMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := mongo.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.WithoutCancel(ctx)) })
		return mongo.NewSink(client.Database(cfg.Database)), nil

	case sinkOpenSearch:
		var cfg opensearch.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := opensearch.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return opensearch.NewSink(client, opensearch.WithRefresh(cfg.Refresh)), nil

	default:
		return nil, fmt.Errorf("unknown sink %q: use %s, %s or %s", name, sinkPostgres, sinkMongo, sinkOpenSearch)
	}
}
