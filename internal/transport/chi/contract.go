package chi

import (
	"context"

	"github.com/TheShai81/music-dashboard/internal/domain/insights"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
	healthuc "github.com/TheShai81/music-dashboard/internal/usecase/health"
)

// TasteService builds and compares taste profiles.
type TasteService interface {
	Profile(ctx context.Context, userID int64) (domtaste.Profile, error)
	Compatibility(ctx context.Context, userID, otherID int64) (float64, error)
}

// LikeService toggles and lists likes.
type LikeService interface {
	Toggle(ctx context.Context, userID int64, trackID string) (bool, error)
	Liked(ctx context.Context, userID int64) ([]track.Liked, error)
}

// SocialService reads and extends the friendship graph.
type SocialService interface {
	Friends(ctx context.Context, userID int64) ([]user.User, error)
	Suggestions(ctx context.Context, userID int64) ([]user.User, error)
	Befriend(ctx context.Context, userID, friendID int64) (bool, error)
}

// RecommendService runs the recommendation strategies.
type RecommendService interface {
	Soulmate(ctx context.Context, userID int64) (domsocial.Match, bool, error)
	RecommendFriend(ctx context.Context, userID int64) (domsocial.Match, bool, error)
	SimilarTracks(ctx context.Context, req similar.Request) ([]similar.Scored, error)
	Discover(ctx context.Context, userID int64, n int) ([]track.Track, error)
}

// InsightsService computes descriptive taste metrics.
type InsightsService interface {
	Obscurity(ctx context.Context, userID int64) (float64, error)
	MusicAge(ctx context.Context, userID int64) (int, error)
	TopGenres(ctx context.Context, userID int64) ([]insights.Ranked, error)
	TopArtists(ctx context.Context, userID int64) ([]insights.Ranked, error)
	Dashboard(ctx context.Context, userID int64) (insights.Dashboard, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
