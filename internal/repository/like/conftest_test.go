package like

import (
	"testing"
	"time"

	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
)

func f(v float64) *float64 { return &v }

func date(year int) *time.Time {
	d := time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
	return &d
}

// seed builds users 1 (three likes), 2 (one like), 3 (no likes) and a small
// catalog with artists and genres:
//
//	t1 a1(rock)           popularity 80, 2000, energy 0.8, tempo 200
//	t2 a2(jazz), a1       popularity 40, 2010, energy 0.4, tempo NULL
//	t3 a3(pop, rock)      popularity 30, no date, energy NULL
//	t4 a2(jazz)           popularity 10, 2020
func seed(t *testing.T) *Repo {
	t.Helper()
	d := sqlite.OpenForTest(t)
	g := d.Gorm()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	now := time.Now()

	must(g.Create(&[]sqlite.User{
		{ID: 1, Username: "ana", CreatedAt: now},
		{ID: 2, Username: "ben", CreatedAt: now},
		{ID: 3, Username: "cat", CreatedAt: now},
	}).Error)
	must(g.Create(&[]sqlite.Track{
		{ID: "t1", Title: "One", Popularity: 80, ReleaseDate: date(2000), Energy: f(0.8), Tempo: f(200)},
		{ID: "t2", Title: "Two", Popularity: 40, ReleaseDate: date(2010), Energy: f(0.4)},
		{ID: "t3", Title: "Three", Popularity: 30},
		{ID: "t4", Title: "Four", Popularity: 10, ReleaseDate: date(2020), Energy: f(0.1)},
	}).Error)
	must(g.Create(&[]sqlite.Artist{{ID: "a1", Name: "Alpha"}, {ID: "a2", Name: "Beta"}, {ID: "a3", Name: "Gamma"}}).Error)
	must(g.Create(&[]sqlite.Genre{{ID: 1, Name: "rock"}, {ID: 2, Name: "jazz"}, {ID: 3, Name: "pop"}}).Error)
	must(g.Create(&[]sqlite.ArtistGenre{
		{ArtistID: "a1", GenreID: 1},
		{ArtistID: "a2", GenreID: 2},
		{ArtistID: "a3", GenreID: 3},
		{ArtistID: "a3", GenreID: 1},
	}).Error)
	must(g.Create(&[]sqlite.TrackArtist{
		{TrackID: "t1", ArtistID: "a1"},
		{TrackID: "t2", ArtistID: "a2"}, {TrackID: "t2", ArtistID: "a1", Position: 1},
		{TrackID: "t3", ArtistID: "a3"},
		{TrackID: "t4", ArtistID: "a2"},
	}).Error)
	must(g.Create(&[]sqlite.TrackLike{
		{UserID: 1, TrackID: "t1", LikedAt: now},
		{UserID: 1, TrackID: "t2", LikedAt: now},
		{UserID: 1, TrackID: "t3", LikedAt: now},
		{UserID: 2, TrackID: "t4", LikedAt: now},
	}).Error)
	return New(g)
}
