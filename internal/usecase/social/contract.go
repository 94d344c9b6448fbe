package social

import (
	"context"

	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
)

// Graph reads and extends the friendship graph.
type Graph interface {
	Friends(ctx context.Context, userID int64) ([]int64, error)
	FriendsOf(ctx context.Context, userIDs []int64) (map[int64][]int64, error)
	Add(ctx context.Context, e domsocial.Edge) (bool, error)
}

// UserReader resolves user ids.
type UserReader interface {
	Exists(ctx context.Context, ids ...int64) (bool, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]user.User, error)
}
