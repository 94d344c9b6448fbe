package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/TheShai81/music-dashboard/internal/db"
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
)

// Repo reads catalog tracks from the relational store.
type Repo struct {
	db *gorm.DB
}

// New creates a catalog repository.
func New(g *gorm.DB) *Repo {
	return &Repo{db: g}
}

// Track returns one track with its raw features.
func (r *Repo) Track(ctx context.Context, id string) (track.Track, error) {
	var row sqlite.Track
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return track.Track{}, domain.ErrTrackNotFound
		}
		return track.Track{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(&row), nil
}

// ByIDs returns the tracks with the given ids. Unknown ids are skipped and
// the result is unordered.
func (r *Repo) ByIDs(ctx context.Context, ids []string) ([]track.Track, error) {
	if len(ids) == 0 {
		return []track.Track{}, nil
	}
	var rows []sqlite.Track
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomainSlice(rows), nil
}

// SampleRandom draws up to n distinct tracks uniformly from the whole catalog.
func (r *Repo) SampleRandom(ctx context.Context, n int) ([]track.Track, error) {
	if n <= 0 {
		return []track.Track{}, nil
	}
	var rows []sqlite.Track
	if err := r.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&rows).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomainSlice(rows), nil
}

// IDsAfter returns up to limit track ids greater than after, ascending.
// It drives keyset scans over the whole catalog.
func (r *Repo) IDsAfter(ctx context.Context, after string, limit int) ([]string, error) {
	ids := make([]string, 0, limit)
	err := r.db.WithContext(ctx).Model(&sqlite.Track{}).
		Where("id > ?", after).
		Order("id").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return ids, nil
}

// LikedBy returns the tracks a user liked, most recent first.
func (r *Repo) LikedBy(ctx context.Context, userID int64) ([]track.Liked, error) {
	type likedRow struct {
		sqlite.Track
		LikedAt time.Time
	}

	var rows []likedRow
	err := r.db.WithContext(ctx).
		Table("tracks AS t").
		Select("t.*, tl.liked_at AS liked_at").
		Joins("JOIN track_likes tl ON tl.track_id = t.id").
		Where("tl.user_id = ?", userID).
		Order("tl.liked_at DESC, t.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("liked tracks of %d: %w", userID, &db.Error{Op: db.OpSelect, Err: err})
	}

	out := make([]track.Liked, len(rows))
	for i := range rows {
		out[i] = track.Liked{Track: toDomain(&rows[i].Track), LikedAt: rows[i].LikedAt}
	}
	return out, nil
}

// withoutGenres restricts a tracks query to tracks none of whose artists carry
// an excluded genre. An empty exclusion set leaves the query untouched.
func withoutGenres(q *gorm.DB, excluded []int64) *gorm.DB {
	if len(excluded) == 0 {
		return q
	}
	return q.Where(`NOT EXISTS (
		SELECT 1 FROM track_artists ta
		JOIN artist_genres ag ON ag.artist_id = ta.artist_id
		WHERE ta.track_id = t.id AND ag.genre_id IN ?)`, excluded)
}

// CountExcludingGenres counts tracks with no genre in excluded.
func (r *Repo) CountExcludingGenres(ctx context.Context, excluded []int64) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Table("tracks AS t")
	if err := withoutGenres(q, excluded).Count(&n).Error; err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return n, nil
}

// ListExcludingGenres returns tracks with no genre in excluded, ordered by id,
// starting at offset.
func (r *Repo) ListExcludingGenres(ctx context.Context, excluded []int64, offset, limit int) ([]track.Track, error) {
	var rows []sqlite.Track
	q := r.db.WithContext(ctx).Table("tracks AS t").Select("t.*")
	err := withoutGenres(q, excluded).
		Order("t.id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomainSlice(rows), nil
}
