package friendship

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TheShai81/music-dashboard/internal/db"
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
	"github.com/TheShai81/music-dashboard/internal/domain/social"
)

// Repo reads and writes the undirected friendship graph. Each edge is one row
// with user_id1 < user_id2, so every read unions both columns.
type Repo struct {
	db *gorm.DB
}

// New creates a friendship repository.
func New(g *gorm.DB) *Repo {
	return &Repo{db: g}
}

// Friends returns the direct friends of userID in ascending order.
func (r *Repo) Friends(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT user_id2 AS id FROM friendships WHERE user_id1 = ?
		UNION
		SELECT user_id1 AS id FROM friendships WHERE user_id2 = ?
		ORDER BY id`, userID, userID).Scan(&ids).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return ids, nil
}

type adjacency struct {
	Owner  int64
	Friend int64
}

// FriendsOf returns the direct friends of every given user in one query.
// Users without friends are absent from the map.
func (r *Repo) FriendsOf(ctx context.Context, userIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []adjacency
	err := r.db.WithContext(ctx).Raw(`
		SELECT user_id1 AS owner, user_id2 AS friend FROM friendships WHERE user_id1 IN ?
		UNION ALL
		SELECT user_id2 AS owner, user_id1 AS friend FROM friendships WHERE user_id2 IN ?`,
		userIDs, userIDs).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("friends of %d users: %w", len(userIDs), &db.Error{Op: db.OpSelect, Err: err})
	}
	for _, row := range rows {
		out[row.Owner] = append(out[row.Owner], row.Friend)
	}
	for id := range out {
		slices.Sort(out[id])
	}
	return out, nil
}

// Add stores an edge. It reports false when the pair was already friends.
func (r *Repo) Add(ctx context.Context, e social.Edge) (bool, error) {
	row := sqlite.Friendship{UserID1: e.Low, UserID2: e.High, CreatedAt: e.CreatedAt}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, &db.Error{Op: db.OpInsert, Err: res.Error}
	}
	return res.RowsAffected > 0, nil
}
