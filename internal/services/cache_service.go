package services

import (
	"context"
	"time"
)

// CacheService is the slice of the redis client the repositories and services
// rely on. Implementations must tolerate concurrent use; callers must tolerate
// a nil CacheService (caching is an optimization, never a source of truth).
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Ping(ctx context.Context) error
}
