// Package insights holds the descriptive taste metrics shown on a user's
// dashboard.
package insights

import "math"

// TopN is the number of genres or artists reported in a ranking.
const TopN = 3

// Ranked is one entry of a liked-tracks ranking.
type Ranked struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Obscurity is 100 minus the mean popularity of liked tracks, rounded to two
// decimals. A nil mean (no likes) yields 0.
func Obscurity(meanPopularity *float64) float64 {
	if meanPopularity == nil {
		return 0
	}
	return math.Round((100-*meanPopularity)*100) / 100
}

// MusicAge rounds the mean age in years of liked tracks with a known release
// date. A nil mean yields 0.
func MusicAge(meanAgeYears *float64) int {
	if meanAgeYears == nil {
		return 0
	}
	return int(math.Round(*meanAgeYears))
}

// Dashboard aggregates every taste metric for one user.
type Dashboard struct {
	UserID     int64    `json:"user_id"`
	LikeCount  int      `json:"like_count"`
	Obscurity  float64  `json:"obscurity"`
	MusicAge   int      `json:"music_age"`
	TopGenres  []Ranked `json:"top_genres"`
	TopArtists []Ranked `json:"top_artists"`
}
