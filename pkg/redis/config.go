package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`

	// VerdictTTL is how long validation verdicts stay cached.
	VerdictTTL time.Duration `env:"REDIS_VERDICT_TTL" envDefault:"24h"`
	KeyPrefix  string        `env:"REDIS_KEY_PREFIX" envDefault:"recordkit:verdict:"`
}
