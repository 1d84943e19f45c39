package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrkit/internal/db/migrations"
	"github.com/dmitrymomot/qrkit/internal/images"
	"github.com/dmitrymomot/qrkit/internal/qrcodes"
	"github.com/dmitrymomot/qrkit/internal/server"
	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/pg"
	"github.com/dmitrymomot/qrkit/pkg/redis"
	"github.com/dmitrymomot/qrkit/pkg/storage"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			log, err := newLogger(cfg, cmd)
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func newLogger(cfg Config, cmd *cobra.Command) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(server.RequestIDExtractor),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

func serve(ctx context.Context, cfg Config, log *slog.Logger) error {
	var (
		repo    qrcodes.Repository
		uploads images.Repository
		cache   qrcodes.RenderCache
		checks  []httpserver.Check
	)

	if cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pg.Migrate(ctx, pool, migrations.FS, cfg.PG, log); err != nil {
			return err
		}
		repo = qrcodes.NewPostgresRepository(pool)
		uploads = images.NewPostgresRepository(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	} else {
		log.WarnContext(ctx, "PG_CONN_URL is not set, records are kept in memory")
		repo = qrcodes.NewMemoryRepository()
		uploads = images.NewMemoryRepository()
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		cache = qrcodes.NewRedisCache(client, cfg.Cache.TTL, log)
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	} else {
		cache = qrcodes.NewMemoryCache(max(cfg.Cache.Size, 1))
	}

	store, filesDir, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	svc := qrcodes.NewService(repo, store,
		qrcodes.WithRenderCache(cache),
		qrcodes.WithLogger(log),
	)
	imageSvc, err := images.NewService(uploads, store, svc, cfg.PublicURL,
		images.WithMaxSize(cfg.Upload.MaxSize),
		images.WithLogger(log),
	)
	if err != nil {
		return err
	}
	router := server.NewRouter(server.RouterOptions{
		Log: log,
		API: qrcodes.NewHandler(svc, log),
		Modules: map[string]server.Mountable{
			"images": images.NewHandler(imageSvc, log),
		},
		Checks:      checks,
		FilesDir:    filesDir,
		FilesPrefix: cfg.Storage.BaseURL,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(addr string, log *slog.Logger) {
			log.Info("qrkit is listening", slog.String("addr", addr))
		}),
	)
	return srv.Run(ctx, router)
}

// newStorage returns the configured image store and, for local storage with
// a path base URL, the directory to serve files from.
func newStorage(ctx context.Context, cfg Config) (storage.Storage, string, error) {
	switch cfg.Storage.Driver {
	case "", StorageLocal:
		s, err := storage.NewLocalStorage(cfg.Storage.Dir, cfg.Storage.BaseURL)
		if err != nil {
			return nil, "", err
		}
		if !strings.HasPrefix(cfg.Storage.BaseURL, "/") {
			return s, "", nil // served elsewhere
		}
		return s, cfg.Storage.Dir, nil
	case StorageS3:
		s, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	}
	return nil, "", fmt.Errorf("%w: unknown storage driver %q", storage.ErrInvalidConfig, cfg.Storage.Driver)
}
