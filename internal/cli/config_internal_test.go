package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/storage"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	a := &app{environ: map[string]string{
		"APP_ENV":             "production",
		"HTTP_ADDR":           ":9090",
		"PG_CONN_URL":         "postgres://localhost/qrkit",
		"REDIS_URL":           "redis://localhost:6379/1",
		"STORAGE_DRIVER":      "s3",
		"S3_BUCKET":           "qr-images",
		"S3_FORCE_PATH_STYLE": "true",
		"CACHE_TTL":           "1h",
		"UPLOAD_MAX_SIZE":     "2048",
	}}
	cfg, err := a.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "qrkit", cfg.Name)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.True(t, cfg.PG.Enabled())
	assert.Equal(t, int32(10), cfg.PG.MaxOpenConns)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, StorageS3, cfg.Storage.Driver)
	assert.Equal(t, "qr-images", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.True(t, cfg.S3.ForcePathStyle)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 512, cfg.Cache.Size)
	assert.Equal(t, int64(2048), cfg.Upload.MaxSize)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
}

func TestNewStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	s, filesDir, err := newStorage(ctx, Config{Storage: StorageConfig{Driver: StorageLocal, Dir: dir, BaseURL: "/files/"}})
	require.NoError(t, err)
	assert.Equal(t, dir, filesDir)
	assert.Equal(t, "/files/a.png", s.URL("a.png"))

	_, filesDir, err = newStorage(ctx, Config{Storage: StorageConfig{Driver: StorageLocal, Dir: dir, BaseURL: "https://cdn.example/qr/"}})
	require.NoError(t, err)
	assert.Empty(t, filesDir)

	_, _, err = newStorage(ctx, Config{Storage: StorageConfig{Driver: "ftp"}})
	require.ErrorIs(t, err, storage.ErrInvalidConfig)
}
