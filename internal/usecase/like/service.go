package like

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	logpkg "github.com/TheShai81/music-dashboard/internal/logger"
)

// Service owns the only write path into taste profiles. Profiles are
// recomputed on read, so a committed toggle is visible to the next request.
type Service struct {
	likes Toggler
	liked LikedReader
	users UserChecker
	now   func() time.Time
}

// New creates a like service.
func New(likes Toggler, liked LikedReader, users UserChecker) *Service {
	return &Service{likes: likes, liked: liked, users: users, now: time.Now}
}

// WithClock overrides the clock used to stamp new likes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Toggle removes the like if it exists and inserts it otherwise. It returns
// the new state.
func (s *Service) Toggle(ctx context.Context, userID int64, trackID string) (bool, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return false, err
	}
	if err := domain.ValidateTrackID("track_id", trackID); err != nil {
		return false, err
	}

	liked, err := s.likes.Toggle(ctx, userID, trackID, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}

	logpkg.FromContext(ctx).Info("like toggled",
		zap.Int64("user_id", userID),
		zap.String("track_id", trackID),
		zap.Bool("liked", liked),
	)
	return liked, nil
}

// Liked lists the user's liked tracks, most recent first.
func (s *Service) Liked(ctx context.Context, userID int64) ([]track.Liked, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return nil, err
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	out, err := s.liked.LikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("liked tracks: %w", err)
	}
	return out, nil
}
