package catalog

import (
	"testing"
	"time"

	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
)

func f(v float64) *float64 { return &v }

func date(year int) *time.Time {
	d := time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

// seedCatalog loads a small catalog:
//
//	t1 rock (a1)          t2 rock+jazz (a1,a2)   t3 jazz (a2)
//	t4 pop (a3)           t5 no genre (a4)       t6 no artist
//
// User 1 liked t1 and t3.
func seedCatalog(t *testing.T) *sqlite.DB {
	t.Helper()
	d := sqlite.OpenForTest(t)
	g := d.Gorm()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	must(g.Create(&[]sqlite.User{{ID: 1, Username: "ana", CreatedAt: time.Now()}}).Error)
	must(g.Create(&[]sqlite.Track{
		{ID: "t1", Title: "One", Popularity: 80, ReleaseDate: date(2000), Energy: f(0.9), Tempo: f(123)},
		{ID: "t2", Title: "Two", Popularity: 40, ReleaseDate: date(2010), Energy: f(0.2)},
		{ID: "t3", Title: "Three", Popularity: 20, Energy: f(0.5), Loudness: f(-10)},
		{ID: "t4", Title: "Four", Popularity: 60},
		{ID: "t5", Title: "Five", Popularity: 10},
		{ID: "t6", Title: "Six", Popularity: 5},
	}).Error)
	must(g.Create(&[]sqlite.Artist{
		{ID: "a1", Name: "Alpha"}, {ID: "a2", Name: "Beta"}, {ID: "a3", Name: "Gamma"}, {ID: "a4", Name: "Delta"},
	}).Error)
	must(g.Create(&[]sqlite.Genre{{ID: 1, Name: "rock"}, {ID: 2, Name: "jazz"}, {ID: 3, Name: "pop"}}).Error)
	must(g.Create(&[]sqlite.ArtistGenre{
		{ArtistID: "a1", GenreID: 1}, {ArtistID: "a2", GenreID: 2}, {ArtistID: "a3", GenreID: 3},
	}).Error)
	must(g.Create(&[]sqlite.TrackArtist{
		{TrackID: "t1", ArtistID: "a1"},
		{TrackID: "t2", ArtistID: "a1"}, {TrackID: "t2", ArtistID: "a2", Position: 1},
		{TrackID: "t3", ArtistID: "a2"},
		{TrackID: "t4", ArtistID: "a3"},
		{TrackID: "t5", ArtistID: "a4"},
	}).Error)
	must(g.Create(&[]sqlite.TrackLike{
		{UserID: 1, TrackID: "t1", LikedAt: time.Now().Add(-time.Hour)},
		{UserID: 1, TrackID: "t3", LikedAt: time.Now()},
	}).Error)
	return d
}
