package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no WithEnvFiles option is given.
const DefaultEnvFile = ".env"

// Option configures Load.
type Option func(*options)

type options struct {
	prefix      string
	envFiles    []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env tag: with "FIELDCHECK_",
// `env:"LOCALE"` reads FIELDCHECK_LOCALE.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles replaces the default .env file list. Missing files are skipped.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.envFiles = paths }
}

// WithEnvironment parses from the given map instead of the process
// environment. Env files still fill in keys the map lacks.
func WithEnvironment(environment map[string]string) Option {
	return func(o *options) {
		if environment != nil {
			o.environment = environment
		}
	}
}

// Load populates v from environment variables using `env` struct tags.
//
// Values from env files never override variables that are already set, and
// the process environment itself is never modified.
//
//	type Config struct {
//	    Locale   string `env:"LOCALE" envDefault:"en"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("FIELDCHECK_")); err != nil {
//	    return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{envFiles: []string{DefaultEnvFile}}
	for _, opt := range opts {
		opt(o)
	}

	environment := o.environment
	if environment == nil {
		environment = env.ToMap(os.Environ())
	}

	fromFiles, err := readEnvFiles(o.envFiles)
	if err != nil {
		return err
	}
	merged := make(map[string]string, len(environment)+len(fromFiles))
	for k, val := range fromFiles {
		merged[k] = val
	}
	for k, val := range environment {
		merged[k] = val
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: merged,
		Prefix:      o.prefix,
	}); err != nil {
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

func readEnvFiles(paths []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		for k, val := range values {
			if _, seen := out[k]; !seen {
				out[k] = val
			}
		}
	}
	return out, nil
}
