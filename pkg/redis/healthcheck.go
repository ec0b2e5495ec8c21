package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Healthcheck returns a probe for health endpoints.
func Healthcheck(client pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
