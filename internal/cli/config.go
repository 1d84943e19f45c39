package cli

import (
	"time"

	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/pg"
	"github.com/dmitrymomot/qrkit/pkg/redis"
	"github.com/dmitrymomot/qrkit/pkg/storage"
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the application configuration read from the environment.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"qrkit"`
	LogLevel string `env:"LOG_LEVEL"`
	// PublicURL is the origin image view pages are served from.
	PublicURL string `env:"APP_PUBLIC_URL" envDefault:"http://localhost:8080"`

	HTTP    httpserver.Config `envPrefix:"HTTP_"`
	PG      pg.Config         `envPrefix:"PG_"`
	Redis   redis.Config      `envPrefix:"REDIS_"`
	Storage StorageConfig     `envPrefix:"STORAGE_"`
	S3      storage.S3Config  `envPrefix:"S3_"`
	Cache   CacheConfig       `envPrefix:"CACHE_"`
	Upload  UploadConfig      `envPrefix:"UPLOAD_"`
}

// StorageConfig selects where rendered images go.
type StorageConfig struct {
	Driver  string `env:"DRIVER" envDefault:"local"`
	Dir     string `env:"DIR" envDefault:"./data/images"`
	BaseURL string `env:"BASE_URL" envDefault:"/files/"`
}

// CacheConfig sizes the render cache. With Redis configured TTL applies,
// otherwise Size bounds the in-process LRU.
type CacheConfig struct {
	Size int           `env:"SIZE" envDefault:"512"`
	TTL  time.Duration `env:"TTL" envDefault:"24h"`
}

// UploadConfig limits picture uploads.
type UploadConfig struct {
	MaxSize int64 `env:"MAX_SIZE" envDefault:"10485760"`
}
