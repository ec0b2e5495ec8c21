// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv for .env files with
// github.com/caarlos0/env/v11 for struct parsing. Every configuration type is
// parsed once and cached for the life of the process, so components can call
// Load freely:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// LoadEnv reads one or more env files before parsing. Later files override
// earlier ones, and the process environment always wins over files.
//
// ResetCache and ForceReloadConfig exist for tests and for processes that
// change their environment after start-up.
package config
