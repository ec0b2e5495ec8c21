package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Healthcheck returns a probe for health endpoints. *mongo.Client satisfies pinger.
func Healthcheck(client pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
