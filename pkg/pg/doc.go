// Package pg opens pgx connection pools and applies goose migrations.
//
// Connect retries with a linear back-off until the database answers a ping.
// Migrate runs the migrations found in an fs.FS (typically an embed.FS owned
// by the store package that defines the schema) and logs each applied
// version through the supplied logger.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, cfg, log); err != nil {
//	    return err
//	}
package pg
