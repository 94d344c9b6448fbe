package dashboard

import (
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/insights"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
)

// User is a registered platform user.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Profile is a user's taste signature. Features are normalized to [0,1] and
// keyed by feature name. A user without likes has every feature at 0.
type Profile struct {
	UserID   int64
	Features map[string]float64
}

// Track is a catalog track.
type Track struct {
	ID          string
	Title       string
	Popularity  int
	ReleaseDate *time.Time
}

// LikedTrack is a track together with the time the user liked it.
type LikedTrack struct {
	Track
	LikedAt time.Time
}

// Match is a recommended user with its compatibility score in [0,1].
type Match struct {
	UserID   int64
	Username string
	Score    float64
}

// Percent renders the score on a 0-100 scale rounded to two decimals.
func (m Match) Percent() float64 { return feature.Percent(m.Score) }

// SimilarTrack is a similar-track search hit.
type SimilarTrack struct {
	ID    string
	Title string
	Score float64
}

// Ranked is one entry of a top genres or top artists ranking.
type Ranked struct {
	ID    string
	Name  string
	Count int
}

// Dashboard aggregates every taste metric for one user.
type Dashboard struct {
	UserID     int64
	LikeCount  int
	Obscurity  float64
	MusicAge   int
	TopGenres  []Ranked
	TopArtists []Ranked
}

func fromInternalUser(u user.User) User {
	return User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func fromInternalUsers(in []user.User) []User {
	out := make([]User, len(in))
	for i, u := range in {
		out[i] = fromInternalUser(u)
	}
	return out
}

func fromInternalProfile(p domtaste.Profile) Profile {
	named := p.Vector.Named()
	features := make(map[string]float64, len(named))
	for name, v := range named {
		features[string(name)] = v
	}
	return Profile{UserID: p.UserID, Features: features}
}

func fromInternalTrack(t track.Track) Track {
	return Track{ID: t.ID, Title: t.Title, Popularity: t.Popularity, ReleaseDate: t.ReleaseDate}
}

func fromInternalTracks(in []track.Track) []Track {
	out := make([]Track, len(in))
	for i, t := range in {
		out[i] = fromInternalTrack(t)
	}
	return out
}

func fromInternalLiked(in []track.Liked) []LikedTrack {
	out := make([]LikedTrack, len(in))
	for i, l := range in {
		out[i] = LikedTrack{Track: fromInternalTrack(l.Track), LikedAt: l.LikedAt}
	}
	return out
}

func fromInternalMatch(m domsocial.Match) Match {
	return Match{UserID: m.UserID, Username: m.Username, Score: m.Score}
}

func fromInternalScored(in []similar.Scored) []SimilarTrack {
	out := make([]SimilarTrack, len(in))
	for i, s := range in {
		out[i] = SimilarTrack{ID: s.Track.ID, Title: s.Track.Title, Score: s.Score}
	}
	return out
}

func fromInternalRanked(in []insights.Ranked) []Ranked {
	out := make([]Ranked, len(in))
	for i, r := range in {
		out[i] = Ranked(r)
	}
	return out
}

func fromInternalDashboard(d insights.Dashboard) Dashboard {
	return Dashboard{
		UserID:     d.UserID,
		LikeCount:  d.LikeCount,
		Obscurity:  d.Obscurity,
		MusicAge:   d.MusicAge,
		TopGenres:  fromInternalRanked(d.TopGenres),
		TopArtists: fromInternalRanked(d.TopArtists),
	}
}
