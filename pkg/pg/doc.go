// Package pg opens the PostgreSQL pool backing the account store.
//
// Connect parses Config into a pgxpool configuration and retries until the
// database answers a ping. Migrate runs goose migrations from an fs.FS, so
// callers embed their SQL files and pass them in directly:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, account.Migrations(), cfg, log); err != nil {
//		return err
//	}
//
// IsDuplicateKeyError and IsNotFoundError classify driver errors so store
// code can map them to domain errors.
package pg
