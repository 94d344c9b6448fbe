package recommend

import (
	"context"

	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
)

// ProfileSource builds taste profiles in bulk.
type ProfileSource interface {
	Profiles(ctx context.Context, userIDs []int64) (map[int64]domtaste.Profile, error)
}

// GraphWalker enumerates the social neighbourhood of a user. Both calls
// validate the user and report unknown users as domain.ErrUserNotFound.
type GraphWalker interface {
	DirectFriends(ctx context.Context, userID int64) ([]int64, error)
	FriendsOfFriends(ctx context.Context, userID int64) ([]int64, error)
}

// UserReader resolves user ids.
type UserReader interface {
	Exists(ctx context.Context, ids ...int64) (bool, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]user.User, error)
}

// TrackReader reads catalog tracks.
type TrackReader interface {
	Track(ctx context.Context, id string) (track.Track, error)
	CountExcludingGenres(ctx context.Context, excluded []int64) (int64, error)
	ListExcludingGenres(ctx context.Context, excluded []int64, offset, limit int) ([]track.Track, error)
}

// Sampler draws random catalog tracks.
type Sampler interface {
	SampleRandom(ctx context.Context, n int) ([]track.Track, error)
}

// GenreReader returns the genres a user already likes.
type GenreReader interface {
	LikedGenreIDs(ctx context.Context, userID int64) ([]int64, error)
}
