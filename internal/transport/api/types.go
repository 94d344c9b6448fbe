// Package api defines the HTTP contract of the dashboard API: wire types,
// the ServerInterface the handlers implement and the chi routing that binds
// path and query parameters onto it.
package api

import "time"

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeUserNotFound     ErrorResponseCode = "user_not_found"
	ErrorResponseCodeTrackNotFound    ErrorResponseCode = "track_not_found"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeIndexUnavailable ErrorResponseCode = "index_unavailable"
	ErrorResponseCodeRateLimited      ErrorResponseCode = "rate_limited"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// UserID is the path parameter identifying a user.
type UserID = int64

// TrackID is the path parameter identifying a catalog track.
type TrackID = string

// DiscoverParams are the query parameters of GET /users/{userID}/discover.
type DiscoverParams struct {
	Limit *int `json:"limit,omitempty" validate:"omitempty,gte=1"`
}

// SimilarTracksParams are the query parameters of GET /tracks/{trackID}/similar.
type SimilarTracksParams struct {
	SampleSize *int `json:"sample_size,omitempty" validate:"omitempty,gte=1"`
	TopK       *int `json:"top_k,omitempty" validate:"omitempty,gte=1"`
	Limit      *int `json:"limit,omitempty" validate:"omitempty,gte=1"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// User is a public user projection.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserListResponse lists users related to UserID.
type UserListResponse struct {
	UserID int64  `json:"user_id"`
	Items  []User `json:"items"`
	Total  int    `json:"total"`
}

// ProfileResponse is a taste signature.
type ProfileResponse struct {
	UserID   int64              `json:"user_id"`
	Vector   []float64          `json:"vector"`
	Features map[string]float64 `json:"features"`
	Empty    bool               `json:"empty"`
}

// CompatibilityResponse scores two users' tastes.
type CompatibilityResponse struct {
	UserID  int64   `json:"user_id"`
	OtherID int64   `json:"other_id"`
	Score   float64 `json:"score"`
	Percent float64 `json:"percent"`
}

// MatchResponse is the result of a single-best recommendation. When Found is
// false every other field is omitted.
type MatchResponse struct {
	Found    bool     `json:"found"`
	UserID   *int64   `json:"user_id,omitempty"`
	Username *string  `json:"username,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Percent  *float64 `json:"percent,omitempty"`
}

// Track is a catalog track.
type Track struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Popularity  int     `json:"popularity"`
	ReleaseDate *string `json:"release_date,omitempty"`
}

// TrackListResponse lists catalog tracks.
type TrackListResponse struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

// LikedTrack is a track with the moment it was liked.
type LikedTrack struct {
	Track
	LikedAt time.Time `json:"liked_at"`
}

// LikedTrackListResponse lists a user's liked tracks, most recent first.
type LikedTrackListResponse struct {
	UserID int64        `json:"user_id"`
	Items  []LikedTrack `json:"items"`
	Total  int          `json:"total"`
}

// ToggleLikeResponse reports the like state after a toggle.
type ToggleLikeResponse struct {
	UserID  int64  `json:"user_id"`
	TrackID string `json:"track_id"`
	Liked   bool   `json:"liked"`
}

// BefriendResponse reports whether a friendship was created.
type BefriendResponse struct {
	UserID   int64 `json:"user_id"`
	FriendID int64 `json:"friend_id"`
	Created  bool  `json:"created"`
}

// SimilarTrack is a similar-track search hit.
type SimilarTrack struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// SimilarTrackListResponse lists similar tracks in random order.
type SimilarTrackListResponse struct {
	TrackID string         `json:"track_id"`
	Items   []SimilarTrack `json:"items"`
	Total   int            `json:"total"`
}

// Ranked is one entry of a liked-tracks ranking.
type Ranked struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RankedListResponse is a top-N ranking.
type RankedListResponse struct {
	UserID int64    `json:"user_id"`
	Items  []Ranked `json:"items"`
}

// ObscurityResponse reports the obscurity score.
type ObscurityResponse struct {
	UserID    int64   `json:"user_id"`
	Obscurity float64 `json:"obscurity"`
}

// MusicAgeResponse reports the music age in years.
type MusicAgeResponse struct {
	UserID   int64 `json:"user_id"`
	MusicAge int   `json:"music_age"`
}

// InsightsResponse aggregates every taste metric.
type InsightsResponse struct {
	UserID     int64    `json:"user_id"`
	LikeCount  int      `json:"like_count"`
	Obscurity  float64  `json:"obscurity"`
	MusicAge   int      `json:"music_age"`
	TopGenres  []Ranked `json:"top_genres"`
	TopArtists []Ranked `json:"top_artists"`
}
