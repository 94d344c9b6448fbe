package sqlite

import "time"

// User is the users table.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email     string    `gorm:"column:email;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// Track is the tracks table. Audio features are raw values; NULL means absent.
type Track struct {
	ID               string     `gorm:"column:id;type:text;primaryKey"`
	Title            string     `gorm:"column:title;type:text;not null"`
	ReleaseDate      *time.Time `gorm:"column:release_date;type:date"`
	DurationMS       int        `gorm:"column:duration_ms"`
	Explicit         bool       `gorm:"column:explicit"`
	Popularity       int        `gorm:"column:popularity;not null;default:0;index"`
	Mode             *float64   `gorm:"column:mode"`
	Danceability     *float64   `gorm:"column:danceability"`
	Energy           *float64   `gorm:"column:energy"`
	Valence          *float64   `gorm:"column:valence"`
	Tempo            *float64   `gorm:"column:tempo"`
	Acousticness     *float64   `gorm:"column:acousticness"`
	Instrumentalness *float64   `gorm:"column:instrumentalness"`
	Liveness         *float64   `gorm:"column:liveness"`
	Speechiness      *float64   `gorm:"column:speechiness"`
	Loudness         *float64   `gorm:"column:loudness"`
}

// Artist is the artists table.
type Artist struct {
	ID         string `gorm:"column:id;type:text;primaryKey"`
	Name       string `gorm:"column:name;type:text;not null;index"`
	Followers  int64  `gorm:"column:followers"`
	Popularity int    `gorm:"column:popularity"`
}

// Genre is the genres table.
type Genre struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex"`
}

// ArtistGenre links an artist to one of its genres.
type ArtistGenre struct {
	ArtistID string `gorm:"column:artist_id;type:text;primaryKey"`
	GenreID  int64  `gorm:"column:genre_id;primaryKey;index"`
}

// TrackArtist credits an artist on a track. Position 0 is the first-credited artist.
type TrackArtist struct {
	TrackID  string `gorm:"column:track_id;type:text;primaryKey"`
	ArtistID string `gorm:"column:artist_id;type:text;primaryKey;index"`
	Position int    `gorm:"column:position;not null;default:0"`
}

// TrackLike is a user's like of a track.
type TrackLike struct {
	UserID  int64     `gorm:"column:user_id;primaryKey"`
	TrackID string    `gorm:"column:track_id;type:text;primaryKey;index"`
	LikedAt time.Time `gorm:"column:liked_at;not null"`
}

// Friendship is one undirected edge, stored once with user_id1 < user_id2.
type Friendship struct {
	UserID1   int64     `gorm:"column:user_id1;primaryKey;check:friendship_order,user_id1 < user_id2"`
	UserID2   int64     `gorm:"column:user_id2;primaryKey;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// Models lists every table managed by Migrate, in creation order.
func Models() []any {
	return []any{
		&User{},
		&Track{},
		&Artist{},
		&Genre{},
		&ArtistGenre{},
		&TrackArtist{},
		&TrackLike{},
		&Friendship{},
	}
}
