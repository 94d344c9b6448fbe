// Package track holds the catalog track projection.
package track

import (
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain/feature"
)

// Track is a catalog track with its raw audio features.
type Track struct {
	ID          string
	Title       string
	Popularity  int
	ReleaseDate *time.Time
	Features    feature.Raw
}

// Vector returns the normalized feature vector of the track.
func (t Track) Vector() feature.Vector {
	return t.Features.Vector()
}

// Summary is the (id, title) pair returned by similar-track search.
type Summary struct {
	ID    string
	Title string
}

// Summarize projects t onto its Summary.
func (t Track) Summarize() Summary {
	return Summary{ID: t.ID, Title: t.Title}
}

// Liked is a track together with the time the user liked it.
type Liked struct {
	Track   Track
	LikedAt time.Time
}
