package pg

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Migrate creates the default validated_records table using the migrations
// embedded in the binary.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", "error", err)
		}
	}()

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, log: log})
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	ctx context.Context
	log logger
}

func (a *gooseLogger) Fatalf(format string, v ...any) {
	a.log.ErrorContext(a.ctx, fmt.Sprintf(format, v...))
}

func (a *gooseLogger) Printf(format string, v ...any) {
	a.log.InfoContext(a.ctx, fmt.Sprintf(format, v...))
}
