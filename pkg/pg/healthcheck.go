package pg

import (
	"context"
	"errors"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a probe for health endpoints. *pgxpool.Pool satisfies pinger.
func Healthcheck(conn pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
