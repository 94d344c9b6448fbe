// Package taste builds user taste signatures and scores their compatibility.
package taste

import "github.com/TheShai81/music-dashboard/internal/domain/feature"

// Profile is a user's normalized taste signature.
// It is derived from live likes on every request and never stored.
type Profile struct {
	UserID int64
	Vector feature.Vector
}

// Build assembles a profile from the mean raw feature values of a user's liked tracks.
// A user with no likes has all means absent and gets the zero vector.
func Build(userID int64, means feature.Raw) Profile {
	return Profile{UserID: userID, Vector: means.Vector()}
}

// Empty reports whether the profile carries no taste information.
func (p Profile) Empty() bool {
	return p.Vector.IsZero()
}

// Compatibility returns the cosine similarity of two profiles in [0,1].
func Compatibility(a, b Profile) float64 {
	return feature.Cosine(a.Vector, b.Vector)
}
