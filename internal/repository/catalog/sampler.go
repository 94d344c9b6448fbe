package catalog

import (
	"context"
	"fmt"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
)

// setReader is the consumer interface for the sample index (ISP).
type setReader interface {
	SRandMember(ctx context.Context, key string, count int) ([]string, error)
}

// trackLoader fetches full tracks for sampled ids.
type trackLoader interface {
	ByIDs(ctx context.Context, ids []string) ([]track.Track, error)
}

// IndexSampler draws random tracks through a Redis set of track ids, so the
// sampling cost does not grow with the catalog.
type IndexSampler struct {
	index  setReader
	tracks trackLoader
	key    string
}

// NewIndexSampler creates a sampler over the set stored at key.
func NewIndexSampler(index setReader, tracks trackLoader, key string) *IndexSampler {
	return &IndexSampler{index: index, tracks: tracks, key: key}
}

// SampleRandom draws up to n distinct tracks. An empty index is reported as
// domain.ErrIndexUnavailable so callers know to run a sync.
func (s *IndexSampler) SampleRandom(ctx context.Context, n int) ([]track.Track, error) {
	if n <= 0 {
		return []track.Track{}, nil
	}
	ids, err := s.index.SRandMember(ctx, s.key, n)
	if err != nil {
		return nil, fmt.Errorf("sample index: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("sample index %q is empty: %w", s.key, domain.ErrIndexUnavailable)
	}
	tracks, err := s.tracks.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load sampled tracks: %w", err)
	}
	return tracks, nil
}
