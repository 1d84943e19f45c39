// Package pg bootstraps PostgreSQL access on top of pgx/v5: a retrying pool
// constructor, goose migrations read from an embedded filesystem, a readiness
// check and helpers that classify driver errors.
//
//	var cfg pg.Config // nested under `envPrefix:"PG_"`
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// Connect retries RetryAttempts times and stops early when ctx is done.
// Migrate serialises access to goose's global settings.
package pg
