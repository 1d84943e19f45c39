package pg

import "time"

// Config holds pool and retry settings. Keys are unprefixed so the struct can
// be nested under a prefix, e.g. `envPrefix:"PG_"`.
type Config struct {
	ConnectionString  string        `env:"CONN_URL"`                                        // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"MAX_OPEN_CONNS" envDefault:"10"`                  // MaxOpenConns is the maximum number of open connections to the database.
	MaxIdleConns      int32         `env:"MAX_IDLE_CONNS" envDefault:"2"`                   // MaxIdleConns is the minimum number of connections kept open.
	HealthCheckPeriod time.Duration `env:"HEALTHCHECK_PERIOD" envDefault:"1m"`              // HealthCheckPeriod is the period between health checks.
	MaxConnIdleTime   time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"10m"`             // MaxConnIdleTime is the maximum amount of time a connection may be idle to be reused.
	MaxConnLifetime   time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"30m"`              // MaxConnLifetime is the maximum amount of time a connection may be reused.
	RetryAttempts     int           `env:"RETRY_ATTEMPTS" envDefault:"3"`                   // RetryAttempts is the number of attempts to connect to the database.
	RetryInterval     time.Duration `env:"RETRY_INTERVAL" envDefault:"2s"`                  // RetryInterval is the base delay between attempts.
	MigrationsTable   string        `env:"MIGRATIONS_TABLE" envDefault:"schema_migrations"` // MigrationsTable stores the applied migration versions.
}

// Enabled reports whether a connection string is configured.
func (c Config) Enabled() bool {
	return c.ConnectionString != ""
}
