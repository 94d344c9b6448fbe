package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain/similar"
)

// UserService reads taste profiles and the friendship graph.
type UserService struct {
	taste  tasteUseCase
	social socialUseCase
	obs    *observer
}

// Profile returns the user's taste signature.
func (s *UserService) Profile(ctx context.Context, userID int64) (_ Profile, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.profile", start, err) }()

	p, err := s.taste.Profile(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}
	return fromInternalProfile(p), nil
}

// Compatibility returns the similarity of two users' taste in [0,1].
func (s *UserService) Compatibility(ctx context.Context, userID, otherID int64) (_ float64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.compatibility", start, err) }()

	score, err := s.taste.Compatibility(ctx, userID, otherID)
	if err != nil {
		return 0, fmt.Errorf("compatibility: %w", err)
	}
	return score, nil
}

// Friends lists the user's direct friends.
func (s *UserService) Friends(ctx context.Context, userID int64) (_ []User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.friends", start, err) }()

	users, err := s.social.Friends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("friends: %w", err)
	}
	return fromInternalUsers(users), nil
}

// Suggestions lists friends of friends who are not yet friends.
func (s *UserService) Suggestions(ctx context.Context, userID int64) (_ []User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.suggestions", start, err) }()

	users, err := s.social.Suggestions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return fromInternalUsers(users), nil
}

// Befriend links two users. It reports false when they already were friends.
func (s *UserService) Befriend(ctx context.Context, userID, friendID int64) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("user.befriend", start, err) }()

	created, err := s.social.Befriend(ctx, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("befriend: %w", err)
	}
	return created, nil
}

// LikeService toggles and lists likes.
type LikeService struct {
	svc likeUseCase
	obs *observer
}

// Toggle likes the track, or unlikes it if already liked.
// It returns the new state.
func (s *LikeService) Toggle(ctx context.Context, userID int64, trackID string) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("like.toggle", start, err) }()

	liked, err := s.svc.Toggle(ctx, userID, trackID)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

// List returns the user's liked tracks, most recent first.
func (s *LikeService) List(ctx context.Context, userID int64) (_ []LikedTrack, err error) {
	start := time.Now()
	defer func() { s.obs.observe("like.list", start, err) }()

	liked, err := s.svc.Liked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	return fromInternalLiked(liked), nil
}

// RecommendService runs the recommendation strategies.
type RecommendService struct {
	svc recommendUseCase
	obs *observer
}

// Soulmate returns the friend with the most compatible taste.
// found is false when the user has no friends.
func (s *RecommendService) Soulmate(ctx context.Context, userID int64) (_ Match, found bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.soulmate", start, err) }()

	m, found, err := s.svc.Soulmate(ctx, userID)
	if err != nil {
		return Match{}, false, fmt.Errorf("soulmate: %w", err)
	}
	return fromInternalMatch(m), found, nil
}

// Friend returns the most compatible friend of a friend.
// found is false when there is no such candidate.
func (s *RecommendService) Friend(ctx context.Context, userID int64) (_ Match, found bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.friend", start, err) }()

	m, found, err := s.svc.RecommendFriend(ctx, userID)
	if err != nil {
		return Match{}, false, fmt.Errorf("recommend friend: %w", err)
	}
	return fromInternalMatch(m), found, nil
}

// SimilarTracks returns tracks that sound like trackID, drawn from a random
// catalog sample. Unset options take the engine defaults.
func (s *RecommendService) SimilarTracks(
	ctx context.Context, trackID string, opts ...SimilarOption,
) (_ []SimilarTrack, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.similar_tracks", start, err) }()

	var cfg similarConfig
	for _, o := range opts {
		o(&cfg)
	}
	req := similar.NewRequest(trackID, cfg.sampleSize, cfg.topK, cfg.returnN)

	scored, err := s.svc.SimilarTracks(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("similar tracks: %w", err)
	}
	return fromInternalScored(scored), nil
}

// Discover returns up to size tracks outside the genres the user already likes.
// A size of 0 takes the default playlist length.
func (s *RecommendService) Discover(ctx context.Context, userID int64, size int) (_ []Track, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.discover", start, err) }()

	tracks, err := s.svc.Discover(ctx, userID, size)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return fromInternalTracks(tracks), nil
}

// InsightsService computes the descriptive taste metrics.
type InsightsService struct {
	svc insightsUseCase
	obs *observer
}

// Dashboard returns every taste metric for the user.
func (s *InsightsService) Dashboard(ctx context.Context, userID int64) (_ Dashboard, err error) {
	start := time.Now()
	defer func() { s.obs.observe("insights.dashboard", start, err) }()

	d, err := s.svc.Dashboard(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	return fromInternalDashboard(d), nil
}
