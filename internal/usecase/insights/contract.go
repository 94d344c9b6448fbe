package insights

import (
	"context"

	"github.com/TheShai81/music-dashboard/internal/domain/insights"
)

// StatsReader computes aggregates over a user's liked tracks.
type StatsReader interface {
	Count(ctx context.Context, userID int64) (int, error)
	MeanPopularity(ctx context.Context, userID int64) (*float64, error)
	MeanAgeYears(ctx context.Context, userID int64, year int) (*float64, error)
	TopGenres(ctx context.Context, userID int64, n int) ([]insights.Ranked, error)
	TopArtists(ctx context.Context, userID int64, n int) ([]insights.Ranked, error)
}

// UserChecker resolves user ids.
type UserChecker interface {
	Exists(ctx context.Context, ids ...int64) (bool, error)
}
