// Package pg delivers validated records to PostgreSQL through pgx/v5.
//
// Connect opens a pool with retry, Healthcheck wraps it for health endpoints
// and Migrate applies the embedded goose migrations that create the default
// validated_records table:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//
//	n, err := pg.NewSink(pool).Write(ctx, "public.validated_records", runID, records)
//
// Sink uses COPY with columns run_id, position and payload. Table names are
// passed as pgx.Identifier, so user input never reaches the SQL text. A target
// table must have those three columns; the migration's table does.
package pg
