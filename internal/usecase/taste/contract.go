package taste

import (
	"context"

	"github.com/TheShai81/music-dashboard/internal/domain/feature"
)

// MeansReader aggregates raw feature means over liked tracks.
type MeansReader interface {
	FeatureMeans(ctx context.Context, userID int64) (feature.Raw, error)
	FeatureMeansOf(ctx context.Context, userIDs []int64) (map[int64]feature.Raw, error)
}

// UserChecker resolves user ids.
type UserChecker interface {
	Exists(ctx context.Context, ids ...int64) (bool, error)
}
