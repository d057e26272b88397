package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds one parsed configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu      sync.Mutex
	entries = map[reflect.Type]*entry{}

	dotenvOnce sync.Once
)

// Load parses environment variables into v using its `env` struct tags.
// The default .env file in the working directory is read once, if present.
// Each configuration type is parsed at most once per process; later calls
// receive a copy of the cached value.
//
// Example:
//
//	type Config struct {
//		APIKey    string `env:"PREMIUM_API_KEY,required"`
//		DebugMode bool   `env:"PREMIUM_DEBUG_MODE" envDefault:"false"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// the file is optional
		_ = godotenv.Load()
	})

	e := lookup[T]()
	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		// allow a retry after the environment is fixed
		forget[T](e)
		return e.err
	}

	cached, ok := e.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = cached
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment.
// Variables already set in the environment are not overridden.
// Call it before the first Load of a type that depends on these files.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	mu.Lock()
	entries = map[reflect.Type]*entry{}
	mu.Unlock()
}

func lookup[T any]() *entry {
	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[key]
	if !ok {
		e = &entry{}
		entries[key] = e
	}
	return e
}

func forget[T any](e *entry) {
	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()
	if entries[key] == e {
		delete(entries, key)
	}
}
