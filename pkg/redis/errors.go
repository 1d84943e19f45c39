package redis

import "errors"

var (
	// ErrEmptyURL means no REDIS_URL was configured; callers fall back to the
	// in-process render cache instead of connecting.
	ErrEmptyURL   = errors.New("redis: REDIS_URL is empty")
	ErrInvalidURL = errors.New("redis: malformed REDIS_URL")
	// ErrNotReady wraps the last ping error after every attempt failed.
	ErrNotReady    = errors.New("redis: server did not answer before the connect timeout")
	ErrUnavailable = errors.New("redis: render cache is unavailable")
)
