// Package pg stores documents in PostgreSQL using pgx/v5.
//
// Connect opens a pgxpool.Pool with retries, Migrate applies the embedded
// goose migrations that create the html_documents table, and Storage
// implements saver.Storage as an upsert keyed by document key:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	store := pg.NewStorage(pool)
//
// Healthcheck wraps Ping for readiness probes.
package pg
