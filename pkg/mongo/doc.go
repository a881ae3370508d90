// Package mongo connects to MongoDB with retries and exposes a health check.
//
//	db, err := mongo.ConnectDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := mongostore.New(db)
//
// Connection settings come from MONGODB_* environment variables (see Config).
package mongo
