package like

import (
	"context"
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain/track"
)

// Toggler flips a like edge atomically. It reports unknown users and tracks
// as domain.ErrUserNotFound and domain.ErrTrackNotFound.
type Toggler interface {
	Toggle(ctx context.Context, userID int64, trackID string, now time.Time) (bool, error)
}

// LikedReader lists a user's liked tracks.
type LikedReader interface {
	LikedBy(ctx context.Context, userID int64) ([]track.Liked, error)
}

// UserChecker resolves user ids.
type UserChecker interface {
	Exists(ctx context.Context, ids ...int64) (bool, error)
}
