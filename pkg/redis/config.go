package redis

import "time"

// Config holds connection settings. Keys are unprefixed so the struct can be
// nested under `envPrefix:"REDIS_"`.
type Config struct {
	ConnectionURL  string        `env:"URL"`                              // ConnectionURL has the form "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of attempts to reach the server.
	RetryInterval  time.Duration `env:"RETRY_INTERVAL" envDefault:"2s"`   // RetryInterval is the delay between attempts.
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"` // ConnectTimeout bounds the whole connect loop.
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
