package catalog

import (
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
)

// toDomain converts a tracks row into the domain projection.
func toDomain(row *sqlite.Track) track.Track {
	t := track.Track{
		ID:          row.ID,
		Title:       row.Title,
		Popularity:  row.Popularity,
		ReleaseDate: row.ReleaseDate,
	}
	t.Features.Set(feature.Mode, row.Mode)
	t.Features.Set(feature.Danceability, row.Danceability)
	t.Features.Set(feature.Energy, row.Energy)
	t.Features.Set(feature.Valence, row.Valence)
	t.Features.Set(feature.Tempo, row.Tempo)
	t.Features.Set(feature.Acousticness, row.Acousticness)
	t.Features.Set(feature.Instrumentalness, row.Instrumentalness)
	t.Features.Set(feature.Liveness, row.Liveness)
	t.Features.Set(feature.Speechiness, row.Speechiness)
	t.Features.Set(feature.Loudness, row.Loudness)
	return t
}

func toDomainSlice(rows []sqlite.Track) []track.Track {
	out := make([]track.Track, len(rows))
	for i := range rows {
		out[i] = toDomain(&rows[i])
	}
	return out
}
