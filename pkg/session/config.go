package session

import "time"

// Config holds local session configuration.
type Config struct {
	// CookieName is the name of the cookie carrying the session token.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the idle lifetime; sessions are extended once less than half remains.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// CleanupInterval for expired sessions in MemoryStore (0 disables).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// Backend selects the store used by the daemon: "memory" or "redis".
	Backend string `env:"SESSION_BACKEND" envDefault:"memory"`

	// RedisKeyPrefix namespaces session keys in Redis.
	RedisKeyPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"memberauth:session:"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		TTL:             30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		Backend:         "memory",
		RedisKeyPrefix:  "memberauth:session:",
	}
}
