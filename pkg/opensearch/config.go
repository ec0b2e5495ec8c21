package opensearch

type Config struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES,required" envSeparator:","`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
	// Refresh is passed to _bulk as the refresh parameter: "true", "false" or "wait_for".
	Refresh string `env:"OPENSEARCH_REFRESH" envDefault:"false"`
}
