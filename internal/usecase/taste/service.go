package taste

import (
	"context"
	"fmt"

	"github.com/TheShai81/music-dashboard/internal/domain"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
)

// Service builds taste profiles from live likes. Profiles are never cached.
type Service struct {
	means MeansReader
	users UserChecker
}

// New creates a taste service.
func New(means MeansReader, users UserChecker) *Service {
	return &Service{means: means, users: users}
}

// Profile builds the taste signature of one user. A user without likes gets
// the zero vector.
func (s *Service) Profile(ctx context.Context, userID int64) (domtaste.Profile, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return domtaste.Profile{}, err
	}
	if err := s.requireUsers(ctx, userID); err != nil {
		return domtaste.Profile{}, err
	}

	raw, err := s.means.FeatureMeans(ctx, userID)
	if err != nil {
		return domtaste.Profile{}, fmt.Errorf("feature means: %w", err)
	}
	return domtaste.Build(userID, raw), nil
}

// Profiles builds many profiles with one grouped query. Every requested id is
// present in the result; users without likes get the zero vector. Ids are
// assumed to be known users.
func (s *Service) Profiles(ctx context.Context, userIDs []int64) (map[int64]domtaste.Profile, error) {
	out := make(map[int64]domtaste.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	means, err := s.means.FeatureMeansOf(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("feature means of %d users: %w", len(userIDs), err)
	}
	for _, id := range userIDs {
		out[id] = domtaste.Build(id, means[id])
	}
	return out, nil
}

// Compatibility scores two users' profiles in [0,1].
func (s *Service) Compatibility(ctx context.Context, userID, otherID int64) (float64, error) {
	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return 0, err
	}
	if err := domain.ValidateUserID("other_id", otherID); err != nil {
		return 0, err
	}
	if err := s.requireUsers(ctx, userID, otherID); err != nil {
		return 0, err
	}

	profiles, err := s.Profiles(ctx, []int64{userID, otherID})
	if err != nil {
		return 0, err
	}
	return domtaste.Compatibility(profiles[userID], profiles[otherID]), nil
}

func (s *Service) requireUsers(ctx context.Context, ids ...int64) error {
	ok, err := s.users.Exists(ctx, ids...)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
