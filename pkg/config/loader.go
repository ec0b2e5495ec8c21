package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per configuration type.
type cache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	global = &cache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v using its env tags. Each
// configuration type is parsed once; later calls are served from the cache.
// The default .env file in the working directory is read on first use, if present.
//
//	type Config struct {
//		Addr string `env:"RECORDKIT_HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// missing .env is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()
	if global.get(key, v) {
		return nil
	}

	global.mu.Lock()
	once, ok := global.onces[key]
	if !ok {
		once = new(sync.Once)
		global.onces[key] = once
	}
	global.mu.Unlock()

	var err error
	once.Do(func() {
		var parsed T
		if perr := env.Parse(&parsed); perr != nil {
			err = errors.Join(ErrParsingConfig, perr)
			// allow a retry once the environment is fixed
			global.mu.Lock()
			delete(global.onces, key)
			global.mu.Unlock()
			return
		}
		global.mu.Lock()
		global.values[key] = parsed
		global.mu.Unlock()
	})
	if err != nil {
		return err
	}

	if global.get(key, v) {
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig drops the cached copy of T and parses the environment again.
func ForceReloadConfig[T any](v *T) error {
	key := typeKey[T]()
	global.mu.Lock()
	delete(global.values, key)
	delete(global.onces, key)
	global.mu.Unlock()
	return Load(v)
}

// ResetCache forgets every cached configuration.
func ResetCache() {
	global.mu.Lock()
	global.values = make(map[string]any)
	global.onces = make(map[string]*sync.Once)
	global.mu.Unlock()
}

// LoadEnv reads env files into the process environment. Without arguments it
// reads ./.env. Later files override earlier ones; variables already set in
// the process environment are never overridden.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	merged := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	for k, v := range merged {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Join(ErrReadingEnvFile, err)
		}
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

func (c *cache) get(key string, dst any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.values[key]
	if !ok {
		return false
	}
	reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(cached))
	return true
}

func typeKey[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.PkgPath() + "." + t.String()
}
