// Package feature maps raw per-track audio attributes onto the unit interval
// and compares the resulting vectors.
package feature

import (
	"errors"
	"fmt"
)

// Name is an audio feature identifier. Values match the storage column names.
type Name string

// The ten audio features that make up a taste signature.
const (
	Mode             Name = "mode"
	Danceability     Name = "danceability"
	Energy           Name = "energy"
	Valence          Name = "valence"
	Tempo            Name = "tempo"
	Acousticness     Name = "acousticness"
	Instrumentalness Name = "instrumentalness"
	Liveness         Name = "liveness"
	Speechiness      Name = "speechiness"
	Loudness         Name = "loudness"
)

// Dimensions is the length of every feature vector.
const Dimensions = 10

// Order fixes the coordinate of each feature inside a Vector.
var Order = [Dimensions]Name{
	Mode,
	Danceability,
	Energy,
	Valence,
	Tempo,
	Acousticness,
	Instrumentalness,
	Liveness,
	Speechiness,
	Loudness,
}

// ErrUnknownFeature signals a feature name outside the static range table.
var ErrUnknownFeature = errors.New("unknown feature")

// Range is the natural [Min, Max] span of a raw feature value.
type Range struct {
	Min float64
	Max float64
}

// ranges is the static table of natural ranges. Min < Max for every entry.
var ranges = map[Name]Range{
	Mode:             {Min: 0, Max: 1},
	Danceability:     {Min: 0, Max: 1},
	Energy:           {Min: 0, Max: 1},
	Valence:          {Min: 0, Max: 1},
	Tempo:            {Min: 0, Max: 246},
	Acousticness:     {Min: 0, Max: 1},
	Instrumentalness: {Min: 0, Max: 1},
	Liveness:         {Min: 0, Max: 1},
	Speechiness:      {Min: 0, Max: 1},
	Loudness:         {Min: -60, Max: 5.4},
}

// RangeOf returns the natural range of a feature.
func RangeOf(name Name) (Range, error) {
	r, ok := ranges[name]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return r, nil
}

// Normalize maps raw into [0,1]. Values outside the range are clamped.
func (r Range) Normalize(raw float64) float64 {
	v := (raw - r.Min) / (r.Max - r.Min)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Normalize maps a raw value of the named feature into [0,1].
func Normalize(name Name, raw float64) (float64, error) {
	r, err := RangeOf(name)
	if err != nil {
		return 0, err
	}
	return r.Normalize(raw), nil
}

// Index returns the coordinate of name inside a Vector.
func Index(name Name) (int, bool) {
	for i, n := range Order {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
