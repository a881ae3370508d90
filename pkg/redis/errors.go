package redis

import "errors"

var (
	ErrEmptyURL    = errors.New("redis: empty connection URL, set REDIS_URL")
	ErrInvalidURL  = errors.New("redis: cannot parse REDIS_URL")
	ErrNotReady    = errors.New("redis: no answer to PING within REDIS_CONNECT_TIMEOUT")
	ErrHealthcheck = errors.New("redis: healthcheck failed")
)
