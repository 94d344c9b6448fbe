package like

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/TheShai81/music-dashboard/internal/db"
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/insights"
)

// Repo owns the track_likes edges and every aggregate computed over them.
type Repo struct {
	db *gorm.DB
}

// New creates a like repository.
func New(g *gorm.DB) *Repo {
	return &Repo{db: g}
}

// Toggle flips the like state of (userID, trackID) in one transaction and
// returns the new state.
func (r *Repo) Toggle(ctx context.Context, userID int64, trackID string, now time.Time) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &sqlite.User{}, userID, domain.ErrUserNotFound); err != nil {
			return err
		}
		if err := mustExist(tx, &sqlite.Track{}, trackID, domain.ErrTrackNotFound); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND track_id = ?", userID, trackID).Delete(&sqlite.TrackLike{})
		if res.Error != nil {
			return &db.Error{Op: db.OpDelete, Err: res.Error}
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		if err := tx.Create(&sqlite.TrackLike{UserID: userID, TrackID: trackID, LikedAt: now}).Error; err != nil {
			return &db.Error{Op: db.OpInsert, Err: err}
		}
		liked = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func mustExist(tx *gorm.DB, model any, id any, notFound error) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return &db.Error{Op: db.OpSelect, Err: err}
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// Count returns how many tracks the user liked.
func (r *Repo) Count(ctx context.Context, userID int64) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&sqlite.TrackLike{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return int(n), nil
}

// featureAverages is the AVG(...) select list in feature.Order.
var featureAverages = func() string {
	cols := make([]string, 0, feature.Dimensions)
	for _, name := range feature.Order {
		cols = append(cols, fmt.Sprintf("AVG(t.%s)", name))
	}
	return strings.Join(cols, ", ")
}()

func scanMeans(scan func(dest ...any) error, prefix ...any) (feature.Raw, error) {
	var vals [feature.Dimensions]sql.NullFloat64
	dest := append([]any{}, prefix...)
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	if err := scan(dest...); err != nil {
		return feature.Raw{}, err
	}

	var raw feature.Raw
	for i, v := range vals {
		if v.Valid {
			mean := v.Float64
			raw[i] = &mean
		}
	}
	return raw, nil
}

// FeatureMeans averages each raw feature over the user's liked tracks. NULL
// values are left out of each average; a feature with no data stays absent.
func (r *Repo) FeatureMeans(ctx context.Context, userID int64) (feature.Raw, error) {
	row := r.db.WithContext(ctx).Raw(
		"SELECT "+featureAverages+` FROM track_likes tl
		JOIN tracks t ON t.id = tl.track_id
		WHERE tl.user_id = ?`, userID).Row()

	raw, err := scanMeans(row.Scan)
	if err != nil {
		return feature.Raw{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return raw, nil
}

// FeatureMeansOf computes FeatureMeans for many users in one grouped query.
// Users without likes are absent from the map.
func (r *Repo) FeatureMeansOf(ctx context.Context, userIDs []int64) (map[int64]feature.Raw, error) {
	out := make(map[int64]feature.Raw, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.WithContext(ctx).Raw(
		"SELECT tl.user_id, "+featureAverages+` FROM track_likes tl
		JOIN tracks t ON t.id = tl.track_id
		WHERE tl.user_id IN ?
		GROUP BY tl.user_id`, userIDs).Rows()
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		raw, err := scanMeans(rows.Scan, &id)
		if err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		out[id] = raw
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return out, nil
}

// LikedGenreIDs returns every genre carried by any artist of any liked track.
func (r *Repo) LikedGenreIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ag.genre_id FROM track_likes tl
		JOIN track_artists ta ON ta.track_id = tl.track_id
		JOIN artist_genres ag ON ag.artist_id = ta.artist_id
		WHERE tl.user_id = ?
		ORDER BY ag.genre_id`, userID).Scan(&ids).Error
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return ids, nil
}

// MeanPopularity averages popularity over liked tracks; nil when there are none.
func (r *Repo) MeanPopularity(ctx context.Context, userID int64) (*float64, error) {
	return r.mean(ctx, `
		SELECT AVG(t.popularity) FROM track_likes tl
		JOIN tracks t ON t.id = tl.track_id
		WHERE tl.user_id = ?`, userID)
}

// MeanAgeYears averages (year - release year) over liked tracks with a known
// release date; nil when there are none.
func (r *Repo) MeanAgeYears(ctx context.Context, userID int64, year int) (*float64, error) {
	return r.mean(ctx, `
		SELECT AVG(? - CAST(substr(t.release_date, 1, 4) AS INTEGER)) FROM track_likes tl
		JOIN tracks t ON t.id = tl.track_id
		WHERE tl.user_id = ? AND t.release_date IS NOT NULL`, year, userID)
}

func (r *Repo) mean(ctx context.Context, query string, args ...any) (*float64, error) {
	var v sql.NullFloat64
	if err := r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&v); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}

// TopGenres ranks genres of liked tracks, attributing each track to the genres
// of its first-credited artist. Ties are broken by name.
func (r *Repo) TopGenres(ctx context.Context, userID int64, n int) ([]insights.Ranked, error) {
	return r.ranked(ctx, `
		SELECT CAST(g.id AS TEXT) AS id, g.name AS name, COUNT(*) AS count
		FROM track_likes tl
		JOIN track_artists ta ON ta.track_id = tl.track_id AND ta.position = 0
		JOIN artist_genres ag ON ag.artist_id = ta.artist_id
		JOIN genres g ON g.id = ag.genre_id
		WHERE tl.user_id = ?
		GROUP BY g.id, g.name
		ORDER BY count DESC, g.name ASC
		LIMIT ?`, userID, n)
}

// TopArtists ranks every artist credited on liked tracks. Ties are broken by name.
func (r *Repo) TopArtists(ctx context.Context, userID int64, n int) ([]insights.Ranked, error) {
	return r.ranked(ctx, `
		SELECT a.id AS id, a.name AS name, COUNT(*) AS count
		FROM track_likes tl
		JOIN track_artists ta ON ta.track_id = tl.track_id
		JOIN artists a ON a.id = ta.artist_id
		WHERE tl.user_id = ?
		GROUP BY a.id, a.name
		ORDER BY count DESC, a.name ASC
		LIMIT ?`, userID, n)
}

func (r *Repo) ranked(ctx context.Context, query string, args ...any) ([]insights.Ranked, error) {
	out := make([]insights.Ranked, 0)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return out, nil
}
