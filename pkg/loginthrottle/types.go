package loginthrottle

import (
	"fmt"
	"time"
)

// Config is the token bucket shape.
type Config struct {
	// Capacity is the burst of attempts allowed from a full bucket.
	Capacity int `env:"LOGIN_THROTTLE_CAPACITY" envDefault:"10"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate     int           `env:"LOGIN_THROTTLE_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"LOGIN_THROTTLE_REFILL_INTERVAL" envDefault:"30s"`
	// Backend is "memory" or "redis".
	Backend     string `env:"LOGIN_THROTTLE_BACKEND" envDefault:"memory"`
	RedisPrefix string `env:"LOGIN_THROTTLE_REDIS_PREFIX" envDefault:"memberauth:throttle:"`
}

func DefaultConfig() Config {
	return Config{
		Capacity:       10,
		RefillRate:     1,
		RefillInterval: 30 * time.Second,
		Backend:        "memory",
		RedisPrefix:    "memberauth:throttle:",
	}
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// ttl is how long an idle bucket takes to refill completely, plus one interval.
func (c Config) ttl() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals+1) * c.RefillInterval
}

// Result is the outcome of one attempt.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Allowed   bool
}

// RetryAfter is how long a denied caller should wait, zero when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}
