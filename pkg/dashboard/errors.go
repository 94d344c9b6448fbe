package dashboard

import "github.com/TheShai81/music-dashboard/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrUserNotFound     = domain.ErrUserNotFound
	ErrTrackNotFound    = domain.ErrTrackNotFound
	ErrInvalidArgument  = domain.ErrInvalidArgument
	ErrSelfFriendship   = domain.ErrSelfFriendship
	ErrIndexUnavailable = domain.ErrIndexUnavailable
)
