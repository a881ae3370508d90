// Package loginthrottle limits credential submissions with a token bucket so
// that passwords cannot be guessed at request speed.
//
// A Limiter consumes one token per attempt from the bucket named by a key,
// usually the client address. Buckets live in a Store: MemoryStore for a
// single instance, RedisStore when several instances share the limit.
//
//	limiter, err := loginthrottle.New(loginthrottle.NewRedisStore(client, "memberauth:throttle:"), cfg)
//	r.With(loginthrottle.Middleware(limiter, loginthrottle.ByRemoteAddr)).Post("/login", h.Login)
//
// Denied requests answer 429 with Retry-After.
package loginthrottle
