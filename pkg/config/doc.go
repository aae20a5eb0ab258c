// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for optional .env files. Variables already present
// in the environment take precedence over .env values, earlier .env files take
// precedence over later ones, and the process environment is never mutated.
//
// # Usage
//
//	type Config struct {
//	    Locale    string `env:"LOCALE" envDefault:"en"`
//	    LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//	    RulesFile string `env:"RULES,required"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg, config.WithPrefix("FIELDCHECK_"))
//
// Parsing failures wrap ErrParsingConfig, so callers can check them with
// errors.Is while keeping env's detailed message.
package config
