package mongo

import "errors"

var (
	ErrEmptyURL    = errors.New("mongo: empty connection URL, set MONGODB_URL")
	ErrConnect     = errors.New("mongo: cannot reach the deployment at MONGODB_URL")
	ErrHealthcheck = errors.New("mongo: healthcheck failed")
)
