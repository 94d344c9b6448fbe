package dashboard

import (
	"context"

	"github.com/TheShai81/music-dashboard/internal/domain/insights"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
)

// --- tasteUseCase mock ---

type mockTasteUC struct {
	profileFn       func(ctx context.Context, userID int64) (domtaste.Profile, error)
	compatibilityFn func(ctx context.Context, userID, otherID int64) (float64, error)
}

func (m *mockTasteUC) Profile(ctx context.Context, userID int64) (domtaste.Profile, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockTasteUC) Compatibility(ctx context.Context, userID, otherID int64) (float64, error) {
	return m.compatibilityFn(ctx, userID, otherID)
}

// --- socialUseCase mock ---

type mockSocialUC struct {
	friendsFn     func(ctx context.Context, userID int64) ([]user.User, error)
	suggestionsFn func(ctx context.Context, userID int64) ([]user.User, error)
	befriendFn    func(ctx context.Context, userID, friendID int64) (bool, error)
}

func (m *mockSocialUC) Friends(ctx context.Context, userID int64) ([]user.User, error) {
	return m.friendsFn(ctx, userID)
}

func (m *mockSocialUC) Suggestions(ctx context.Context, userID int64) ([]user.User, error) {
	return m.suggestionsFn(ctx, userID)
}

func (m *mockSocialUC) Befriend(ctx context.Context, userID, friendID int64) (bool, error) {
	return m.befriendFn(ctx, userID, friendID)
}

// --- likeUseCase mock ---

type mockLikeUC struct {
	toggleFn func(ctx context.Context, userID int64, trackID string) (bool, error)
	likedFn  func(ctx context.Context, userID int64) ([]track.Liked, error)
}

func (m *mockLikeUC) Toggle(ctx context.Context, userID int64, trackID string) (bool, error) {
	return m.toggleFn(ctx, userID, trackID)
}

func (m *mockLikeUC) Liked(ctx context.Context, userID int64) ([]track.Liked, error) {
	return m.likedFn(ctx, userID)
}

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	soulmateFn func(ctx context.Context, userID int64) (domsocial.Match, bool, error)
	friendFn   func(ctx context.Context, userID int64) (domsocial.Match, bool, error)
	similarFn  func(ctx context.Context, req similar.Request) ([]similar.Scored, error)
	discoverFn func(ctx context.Context, userID int64, n int) ([]track.Track, error)
}

func (m *mockRecommendUC) Soulmate(ctx context.Context, userID int64) (domsocial.Match, bool, error) {
	return m.soulmateFn(ctx, userID)
}

func (m *mockRecommendUC) RecommendFriend(ctx context.Context, userID int64) (domsocial.Match, bool, error) {
	return m.friendFn(ctx, userID)
}

func (m *mockRecommendUC) SimilarTracks(ctx context.Context, req similar.Request) ([]similar.Scored, error) {
	return m.similarFn(ctx, req)
}

func (m *mockRecommendUC) Discover(ctx context.Context, userID int64, n int) ([]track.Track, error) {
	return m.discoverFn(ctx, userID, n)
}

// --- insightsUseCase mock ---

type mockInsightsUC struct {
	dashboardFn func(ctx context.Context, userID int64) (insights.Dashboard, error)
}

func (m *mockInsightsUC) Dashboard(ctx context.Context, userID int64) (insights.Dashboard, error) {
	return m.dashboardFn(ctx, userID)
}
