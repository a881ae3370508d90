package loginthrottle

import (
	"context"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// Take removes cost tokens from the bucket at key if it holds enough.
	// It returns the tokens left (negative when denied, the bucket is then
	// unchanged) and when the next refill happens.
	Take(ctx context.Context, key string, cost int, cfg Config, now time.Time) (remaining int, resetAt time.Time, err error)

	// Reset drops the bucket at key.
	Reset(ctx context.Context, key string) error
}
