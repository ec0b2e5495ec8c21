package main

import "time"

// appConfig holds defaults for every command. Flags override these values.
type appConfig struct {
	Env         string        `env:"RECORDKIT_ENV" envDefault:"development"`
	LogLevel    string        `env:"RECORDKIT_LOG_LEVEL"`
	Policy      string        `env:"RECORDKIT_POLICY" envDefault:"ethics_approval"`
	PolicyFiles []string      `env:"RECORDKIT_POLICY_FILES" envSeparator:","`
	Normalize   []string      `env:"RECORDKIT_NORMALIZE" envSeparator:","`
	Source      string        `env:"RECORDKIT_SOURCE" envDefault:"local"`
	Sink        string        `env:"RECORDKIT_SINK" envDefault:"pg"`
	Target      string        `env:"RECORDKIT_TARGET"`
	Cache       bool          `env:"RECORDKIT_CACHE" envDefault:"false"`
	Migrate     bool          `env:"RECORDKIT_MIGRATE" envDefault:"true"`
	PushTimeout time.Duration `env:"RECORDKIT_PUSH_TIMEOUT" envDefault:"5m"`
}
