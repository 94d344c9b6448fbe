package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	logpkg "github.com/TheShai81/music-dashboard/internal/logger"
	"github.com/TheShai81/music-dashboard/internal/metrics"
)

// Strategy names used in logs and metrics.
const (
	StrategySoulmate        = "soulmate"
	StrategyRecommendFriend = "recommend_friend"
	StrategySimilarTracks   = "similar_tracks"
	StrategyDiscover        = "discover"
)

// Discovery playlist bounds.
const (
	DefaultDiscoverSize = 20
	MaxDiscoverSize     = 100
)

// Service runs the recommendation strategies over live profiles, the social
// graph and random catalog samples.
type Service struct {
	profiles ProfileSource
	graph    GraphWalker
	users    UserReader
	tracks   TrackReader
	sampler  Sampler
	genres   GenreReader
	rng      Rand
}

// New creates a recommendation service with a randomly seeded generator.
func New(
	profiles ProfileSource,
	graph GraphWalker,
	users UserReader,
	tracks TrackReader,
	sampler Sampler,
	genres GenreReader,
) *Service {
	return &Service{
		profiles: profiles,
		graph:    graph,
		users:    users,
		tracks:   tracks,
		sampler:  sampler,
		genres:   genres,
		rng:      NewRand(rand.Uint64(), rand.Uint64()),
	}
}

// WithRand replaces the random generator.
func (s *Service) WithRand(r Rand) *Service {
	s.rng = r
	return s
}

// Soulmate returns the direct friend whose taste is closest to the user's.
// Ties go to the lowest user id. found is false when the user has no friends.
func (s *Service) Soulmate(ctx context.Context, userID int64) (m domsocial.Match, found bool, err error) {
	defer s.observe(ctx, StrategySoulmate, time.Now(), &found, &err)

	friends, err := s.graph.DirectFriends(ctx, userID)
	if err != nil {
		return domsocial.Match{}, false, err
	}
	return s.bestMatch(ctx, userID, friends)
}

// RecommendFriend returns the friend-of-friend whose taste is closest to the
// user's. Ties go to the lowest user id. found is false when there are no
// candidates.
func (s *Service) RecommendFriend(ctx context.Context, userID int64) (m domsocial.Match, found bool, err error) {
	defer s.observe(ctx, StrategyRecommendFriend, time.Now(), &found, &err)

	candidates, err := s.graph.FriendsOfFriends(ctx, userID)
	if err != nil {
		return domsocial.Match{}, false, err
	}
	return s.bestMatch(ctx, userID, candidates)
}

func (s *Service) bestMatch(ctx context.Context, userID int64, candidates []int64) (domsocial.Match, bool, error) {
	if len(candidates) == 0 {
		return domsocial.Match{}, false, nil
	}

	ids := append([]int64{userID}, candidates...)
	profiles, err := s.profiles.Profiles(ctx, ids)
	if err != nil {
		return domsocial.Match{}, false, fmt.Errorf("build profiles: %w", err)
	}

	self := profiles[userID]
	matches := make([]domsocial.Match, 0, len(candidates))
	for _, id := range candidates {
		matches = append(matches, domsocial.Match{
			UserID: id,
			Score:  domtaste.Compatibility(self, profiles[id]),
		})
	}
	best, _ := domsocial.Best(matches)

	users, err := s.users.GetMany(ctx, []int64{best.UserID})
	if err != nil {
		return domsocial.Match{}, false, fmt.Errorf("resolve match: %w", err)
	}
	best.Username = users[best.UserID].Username
	return best, true, nil
}

// SimilarTracks samples the catalog, keeps the top_k tracks closest to the
// target and returns return_n of them picked uniformly in random order. The
// target never appears in the result.
func (s *Service) SimilarTracks(ctx context.Context, req similar.Request) (out []similar.Scored, err error) {
	found := false
	defer s.observe(ctx, StrategySimilarTracks, time.Now(), &found, &err)

	if err := domain.ValidateTrackID("track_id", req.TrackID()); err != nil {
		return nil, err
	}
	target, err := s.tracks.Track(ctx, req.TrackID())
	if err != nil {
		return nil, fmt.Errorf("get target: %w", err)
	}

	sample, err := s.sampler.SampleRandom(ctx, req.SampleSize())
	if err != nil {
		return nil, fmt.Errorf("sample catalog: %w", err)
	}
	candidates := similar.Candidates(target.ID, sample, req.SampleSize())
	metrics.SimilarCandidates.Observe(float64(len(candidates)))

	top := similar.TopK(target.Vector(), candidates, req.TopK())
	out = similar.Pick(top, req.ReturnN(), s.rng.Shuffle)
	found = len(out) > 0
	return out, nil
}

// Discover returns up to n tracks none of whose genres the user already likes,
// read forward from a random offset in id order. A user without likes has no
// exclusions.
func (s *Service) Discover(ctx context.Context, userID int64, n int) (out []track.Track, err error) {
	found := false
	defer s.observe(ctx, StrategyDiscover, time.Now(), &found, &err)

	if err := domain.ValidateUserID("user_id", userID); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultDiscoverSize
	}
	n = min(n, MaxDiscoverSize)

	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	excluded, err := s.genres.LikedGenreIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("liked genres: %w", err)
	}
	total, err := s.tracks.CountExcludingGenres(ctx, excluded)
	if err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}
	if total == 0 {
		return []track.Track{}, nil
	}

	offset := s.rng.IntN(int(max(total-int64(n), 0)) + 1)
	out, err = s.tracks.ListExcludingGenres(ctx, excluded, offset, n)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	found = len(out) > 0
	return out, nil
}

func (s *Service) observe(ctx context.Context, strategy string, start time.Time, found *bool, err *error) {
	elapsed := time.Since(start)
	outcome := metrics.OutcomeEmpty
	switch {
	case *err != nil:
		outcome = metrics.OutcomeError
	case *found:
		outcome = metrics.OutcomeFound
	}
	metrics.ObserveStrategy(strategy, outcome, elapsed)

	logpkg.FromContext(ctx).Debug("recommendation",
		zap.String("strategy", strategy),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)
}
