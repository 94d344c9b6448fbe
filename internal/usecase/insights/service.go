package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/insights"
)

// Service computes descriptive taste metrics. A user without likes gets zero
// values and empty rankings.
type Service struct {
	stats StatsReader
	users UserChecker
	now   func() time.Time
}

// New creates an insights service.
func New(stats StatsReader, users UserChecker) *Service {
	return &Service{stats: stats, users: users, now: time.Now}
}

// WithClock overrides the clock that supplies the current year.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Obscurity returns 100 minus the mean popularity of liked tracks.
func (s *Service) Obscurity(ctx context.Context, userID int64) (float64, error) {
	if err := s.require(ctx, userID); err != nil {
		return 0, err
	}
	return s.obscurity(ctx, userID)
}

func (s *Service) obscurity(ctx context.Context, userID int64) (float64, error) {
	mean, err := s.stats.MeanPopularity(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mean popularity: %w", err)
	}
	return insights.Obscurity(mean), nil
}

// MusicAge returns the rounded mean age in years of liked tracks.
func (s *Service) MusicAge(ctx context.Context, userID int64) (int, error) {
	if err := s.require(ctx, userID); err != nil {
		return 0, err
	}
	return s.musicAge(ctx, userID)
}

func (s *Service) musicAge(ctx context.Context, userID int64) (int, error) {
	mean, err := s.stats.MeanAgeYears(ctx, userID, s.now().UTC().Year())
	if err != nil {
		return 0, fmt.Errorf("mean age: %w", err)
	}
	return insights.MusicAge(mean), nil
}

// TopGenres returns the user's three most liked genres.
func (s *Service) TopGenres(ctx context.Context, userID int64) ([]insights.Ranked, error) {
	if err := s.require(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.stats.TopGenres(ctx, userID, insights.TopN)
	if err != nil {
		return nil, fmt.Errorf("top genres: %w", err)
	}
	return out, nil
}

// TopArtists returns the user's three most liked artists.
func (s *Service) TopArtists(ctx context.Context, userID int64) ([]insights.Ranked, error) {
	if err := s.require(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.stats.TopArtists(ctx, userID, insights.TopN)
	if err != nil {
		return nil, fmt.Errorf("top artists: %w", err)
	}
	return out, nil
}

// Dashboard gathers every metric in one call.
func (s *Service) Dashboard(ctx context.Context, userID int64) (insights.Dashboard, error) {
	if err := s.require(ctx, userID); err != nil {
		return insights.Dashboard{}, err
	}

	d := insights.Dashboard{UserID: userID}
	var err error
	if d.LikeCount, err = s.stats.Count(ctx, userID); err != nil {
		return insights.Dashboard{}, fmt.Errorf("like count: %w", err)
	}
	if d.Obscurity, err = s.obscurity(ctx, userID); err != nil {
		return insights.Dashboard{}, err
	}
	if d.MusicAge, err = s.musicAge(ctx, userID); err != nil {
		return insights.Dashboard{}, err
	}
	if d.TopGenres, err = s.stats.TopGenres(ctx, userID, insights.TopN); err != nil {
		return insights.Dashboard{}, fmt.Errorf("top genres: %w", err)
	}
	if d.TopArtists, err = s.stats.TopArtists(ctx, userID, insights.TopN); err != nil {
		return insights.Dashboard{}, fmt.Errorf("top artists: %w", err)
	}
	return d, nil
}

func (s *Service) require(ctx context.Context, userID int64) error {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return err
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
