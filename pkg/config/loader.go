package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by configuration types that check their own
// values after parsing.
type Validator interface {
	Validate() error
}

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache     sync.Map // reflect.Type -> *entry
	dotenvRun sync.Once
)

// Load parses the environment into v. Each configuration type is parsed once
// per process; later calls copy the cached value, or return the cached error.
//
// The .env file in the working directory is read on first use if it exists.
// When *T implements Validator, Validate runs after parsing.
//
//	type serverConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg serverConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvRun.Do(func() {
		_ = godotenv.Load() // a missing .env file is fine
	})

	e, _ := cache.LoadOrStore(reflect.TypeOf((*T)(nil)).Elem(), &entry{})
	ent := e.(*entry)
	ent.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			ent.err = errors.Join(ErrParsingConfig, err)
			return
		}
		if val, ok := any(&cfg).(Validator); ok {
			if err := val.Validate(); err != nil {
				ent.err = errors.Join(ErrInvalidConfig, err)
				return
			}
		}
		ent.value = cfg
	})

	if ent.err != nil {
		return ent.err
	}
	*v = ent.value.(T)
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the program cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment. Variables
// that are already set keep their values. It replaces the implicit load of
// ./.env done by Load.
func LoadEnv(paths ...string) error {
	dotenvRun.Do(func() {})
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset drops every cached configuration so the next Load parses again.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}
