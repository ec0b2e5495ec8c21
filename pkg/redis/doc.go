// Package redis connects to Redis with go-redis/v9 and caches validation
// verdicts.
//
// A verdict depends only on the policy and the normalised records, so
// VerdictCache can keep it for as long as the policy definition is stable:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(
//	    pipeline.WithCache(redis.NewVerdictCache(client, cfg.KeyPrefix), cfg.VerdictTTL),
//	)
//
// Changing a policy without renaming it leaves stale verdicts until they
// expire; lower REDIS_VERDICT_TTL or change REDIS_KEY_PREFIX when editing
// policies in place.
package redis
