package catalog

import (
	"context"

	"github.com/TheShai81/music-dashboard/internal/domain/track"
)

// IDScanner pages through catalog track ids in ascending order.
type IDScanner interface {
	IDsAfter(ctx context.Context, after string, limit int) ([]string, error)
}

// IndexWriter is the subset of the set store the index sync needs.
type IndexWriter interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SCard(ctx context.Context, key string) (int64, error)
	Rename(ctx context.Context, src, dst string) error
	Del(ctx context.Context, key string) error
}

// Sampler draws random catalog tracks.
type Sampler interface {
	SampleRandom(ctx context.Context, n int) ([]track.Track, error)
}
