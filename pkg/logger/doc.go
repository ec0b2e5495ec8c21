// Package logger builds *slog.Logger instances with functional options and
// ships attribute helpers so every component logs the same keys.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler in LogHandlerDecorator, which adds attributes taken from the context
// of each logging call. The run id stored with WithRunID is always extracted,
// so everything logged during a pipeline run carries "run_id".
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "recordkit"),
//	    logger.WithLevelName(cfg.LogLevel),
//	)
//	logger.SetAsDefault(log)
//
//	ctx = logger.WithRunID(ctx, runID.String())
//	log.WarnContext(ctx, "records rejected",
//	    logger.Policy("ethics_approval"),
//	    logger.RecordIndex(v.Index),
//	    logger.Field(v.Field),
//	    logger.Reason(v.Reason),
//	)
//
// Error and Errors return an empty attribute for nil errors, which slog drops,
// so they can be passed unconditionally.
package logger
