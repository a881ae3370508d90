package loginthrottle

import "errors"

var (
	ErrInvalidConfig = errors.New("loginthrottle.invalid_config")
	ErrInvalidCost   = errors.New("loginthrottle.invalid_cost")
	ErrEmptyKey      = errors.New("loginthrottle.empty_key")
)
