package main

import (
	"fmt"

	"github.com/dmitrymomot/fieldcheck/pkg/config"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

const envPrefix = "FIELDCHECK_"

// Config is read from FIELDCHECK_* environment variables and .env.
// An empty LogLevel keeps the environment's default level.
type Config struct {
	Env       string   `env:"ENV" envDefault:"development"`
	Locale    string   `env:"LOCALE" envDefault:"en"`
	LogLevel  string   `env:"LOG_LEVEL"`
	LogFormat string   `env:"LOG_FORMAT"`
	NoColor   bool     `env:"NO_COLOR"`
	Messages  []string `env:"MESSAGES" envSeparator:","`
}

func loadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(envPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	switch logger.Format(cfg.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText, logger.FormatColor:
	default:
		return Config{}, fmt.Errorf("%sLOG_FORMAT: unknown format %q", envPrefix, cfg.LogFormat)
	}
	return cfg, nil
}

// logFormat returns the configured format, or the environment default:
// JSON for production and staging, colored text otherwise.
func (c Config) logFormat() logger.Format {
	if c.LogFormat != "" {
		return logger.Format(c.LogFormat)
	}
	switch c.Env {
	case logger.EnvProduction, "prod", logger.EnvStaging, "stage":
		return logger.FormatJSON
	default:
		return logger.FormatColor
	}
}
