package db

import (
	"context"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetStore provides the Redis set operations behind the catalog sample index.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SRandMember(ctx context.Context, key string, count int) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
	Rename(ctx context.Context, src, dst string) error
	Del(ctx context.Context, key string) error
}

// IndexStore is the facade of the Redis-backed sample index store.
type IndexStore interface {
	Pinger
	SetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
