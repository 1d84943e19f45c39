// Package config loads typed configuration from environment variables.
//
// It is a small layer over github.com/caarlos0/env/v11 that also reads an
// optional .env file through github.com/joho/godotenv.
//
//	type Config struct {
//		LogLevel string      `env:"LOG_LEVEL" envDefault:"info"`
//		PG       PGConfig    `envPrefix:"PG_"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg, config.WithPrefix("QRKIT_"))
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile so they can be checked
// with errors.Is.
package config
