package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	files  []string
	prefix string
}

// WithEnvFiles loads the given dotenv files before parsing. Variables that
// are already set in the process environment are not overridden. Missing
// files are an error, unlike the implicit default .env.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.files = append(o.files, files...)
	}
}

// WithPrefix prepends prefix to every env tag, e.g. "SIGNUP_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// Load parses environment variables into v based on its `env` struct tags.
//
// The default .env file in the working directory is loaded once per process
// if it exists. Additional files may be supplied with WithEnvFiles.
//
// Example:
//
//	type CheckConfig struct {
//		Latency time.Duration `env:"CHECK_LATENCY" envDefault:"750ms"`
//		Users   []string      `env:"KNOWN_USERS" envSeparator:","`
//	}
//
//	var cfg CheckConfig
//	if err := config.Load(&cfg, config.WithPrefix("SIGNUP_")); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})

	for _, f := range o.files {
		if _, err := os.Stat(f); err != nil {
			return errors.Join(ErrEnvFile, err)
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Join(ErrEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
