package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/TheShai81/music-dashboard/internal/logger"
	"github.com/TheShai81/music-dashboard/internal/metrics"
)

// DefaultSyncBatch is the number of ids read and written per round trip.
const DefaultSyncBatch = 1000

// IndexSync rebuilds the Redis set of track ids that backs the index sampler.
// The new set is built under a temporary key and renamed over the live key,
// so readers never observe a partial index.
type IndexSync struct {
	ids   IDScanner
	index IndexWriter
	key   string
	batch int
}

// NewIndexSync creates an index rebuilder. batch <= 0 uses DefaultSyncBatch.
func NewIndexSync(ids IDScanner, index IndexWriter, key string, batch int) *IndexSync {
	if batch <= 0 {
		batch = DefaultSyncBatch
	}
	return &IndexSync{ids: ids, index: index, key: key, batch: batch}
}

// Sync scans the catalog in id order and swaps in a fresh index. It returns the
// number of ids in the live index afterwards.
func (s *IndexSync) Sync(ctx context.Context) (int64, error) {
	log := logpkg.FromContext(ctx)
	start := time.Now()
	tmp := s.key + ":tmp"

	if err := s.index.Del(ctx, tmp); err != nil {
		return 0, fmt.Errorf("clear %s: %w", tmp, err)
	}

	var written int64
	after := ""
	for {
		ids, err := s.ids.IDsAfter(ctx, after, s.batch)
		if err != nil {
			s.discard(ctx, tmp)
			return 0, fmt.Errorf("scan ids after %q: %w", after, err)
		}
		if len(ids) == 0 {
			break
		}
		if err := s.index.SAdd(ctx, tmp, ids...); err != nil {
			s.discard(ctx, tmp)
			return 0, fmt.Errorf("write batch after %q: %w", after, err)
		}
		written += int64(len(ids))
		after = ids[len(ids)-1]
		log.Debug("index batch written", zap.Int("size", len(ids)), zap.Int64("total", written))
		if len(ids) < s.batch {
			break
		}
	}

	if written == 0 {
		if err := s.index.Del(ctx, s.key); err != nil {
			return 0, fmt.Errorf("clear %s: %w", s.key, err)
		}
		metrics.IndexTracks.Set(0)
		log.Warn("catalog is empty, sample index cleared", zap.String("key", s.key))
		return 0, nil
	}

	if err := s.index.Rename(ctx, tmp, s.key); err != nil {
		s.discard(ctx, tmp)
		return 0, fmt.Errorf("swap index: %w", err)
	}
	n, err := s.index.SCard(ctx, s.key)
	if err != nil {
		return 0, fmt.Errorf("count index: %w", err)
	}
	metrics.IndexTracks.Set(float64(n))

	log.Info("sample index rebuilt",
		zap.String("key", s.key),
		zap.Int64("tracks", n),
		zap.Duration("elapsed", time.Since(start)),
	)
	return n, nil
}

func (s *IndexSync) discard(ctx context.Context, tmp string) {
	if err := s.index.Del(ctx, tmp); err != nil {
		logpkg.FromContext(ctx).Warn("failed to discard partial index",
			zap.String("key", tmp), zap.Error(err))
	}
}
