// Package redis connects to Redis with go-redis/v9, retrying until the
// server answers PING, and exposes a health check for readiness probes.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	sessions := session.NewRedisStore(client, "memberauth:sess:")
package redis
