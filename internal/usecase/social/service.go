package social

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/domain"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
	logpkg "github.com/TheShai81/music-dashboard/internal/logger"
)

// Service walks the friendship graph to depth two.
type Service struct {
	graph Graph
	users UserReader
	now   func() time.Time
}

// New creates a social graph service.
func New(graph Graph, users UserReader) *Service {
	return &Service{graph: graph, users: users, now: time.Now}
}

// WithClock overrides the clock used to stamp new friendships.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// DirectFriends returns the user's friends in ascending id order.
func (s *Service) DirectFriends(ctx context.Context, userID int64) ([]int64, error) {
	if err := s.require(ctx, userID); err != nil {
		return nil, err
	}
	return s.directFriends(ctx, userID)
}

func (s *Service) directFriends(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.graph.Friends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("direct friends: %w", err)
	}
	return ids, nil
}

// FriendsOfFriends returns users exactly two hops away, excluding the user and
// the user's direct friends, in ascending id order. No friends yields an empty
// slice.
func (s *Service) FriendsOfFriends(ctx context.Context, userID int64) ([]int64, error) {
	if err := s.require(ctx, userID); err != nil {
		return nil, err
	}
	direct, err := s.directFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(direct) == 0 {
		return []int64{}, nil
	}

	second, err := s.graph.FriendsOf(ctx, direct)
	if err != nil {
		return nil, fmt.Errorf("friends of friends: %w", err)
	}
	foaf := domsocial.FriendsOfFriends(userID, direct, second)
	logpkg.FromContext(ctx).Debug("friends of friends",
		zap.Int64("user_id", userID),
		zap.Int("direct", len(direct)),
		zap.Int("candidates", len(foaf)),
	)
	return foaf, nil
}

// Friends lists the user's direct friends with their profiles.
func (s *Service) Friends(ctx context.Context, userID int64) ([]user.User, error) {
	ids, err := s.DirectFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

// Suggestions lists every friend-of-friend candidate with their profiles.
func (s *Service) Suggestions(ctx context.Context, userID int64) ([]user.User, error) {
	ids, err := s.FriendsOfFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

// Befriend links two users. It reports false when they were already friends.
func (s *Service) Befriend(ctx context.Context, userID, friendID int64) (bool, error) {
	edge, err := domsocial.NewEdge(userID, friendID, s.now().UTC())
	if err != nil {
		return false, err
	}
	ok, err := s.users.Exists(ctx, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("check users: %w", err)
	}
	if !ok {
		return false, domain.ErrUserNotFound
	}

	created, err := s.graph.Add(ctx, edge)
	if err != nil {
		return false, fmt.Errorf("add friendship: %w", err)
	}
	if created {
		logpkg.FromContext(ctx).Info("friendship created",
			zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	}
	return created, nil
}

func (s *Service) resolve(ctx context.Context, ids []int64) ([]user.User, error) {
	byID, err := s.users.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
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
