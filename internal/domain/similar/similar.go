// Package similar implements approximate similar-track search over a random
// catalog sample.
package similar

import (
	"cmp"
	"slices"

	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
)

// Defaults and upper bounds for a similar-track request.
const (
	DefaultSampleSize = 2000
	DefaultTopK       = 50
	DefaultReturnN    = 10

	MaxSampleSize = 10000
	MaxTopK       = 500
	MaxReturnN    = 100
)

// Request is a validated similar-track query.
type Request struct {
	trackID    string
	sampleSize int
	topK       int
	returnN    int
}

// NewRequest normalizes the tuning parameters. Zero or negative values take the
// defaults and oversized values are capped.
func NewRequest(trackID string, sampleSize, topK, returnN int) Request {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if sampleSize > MaxSampleSize {
		sampleSize = MaxSampleSize
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if returnN <= 0 {
		returnN = DefaultReturnN
	}
	if returnN > MaxReturnN {
		returnN = MaxReturnN
	}
	return Request{trackID: trackID, sampleSize: sampleSize, topK: topK, returnN: returnN}
}

// TrackID returns the target track.
func (r Request) TrackID() string { return r.trackID }

// SampleSize returns how many catalog tracks to draw.
func (r Request) SampleSize() int { return r.sampleSize }

// TopK returns how many best-scoring candidates to keep.
func (r Request) TopK() int { return r.topK }

// ReturnN returns how many of the top candidates to hand back.
func (r Request) ReturnN() int { return r.returnN }

// Scored is a candidate track with its similarity to the target.
type Scored struct {
	Track track.Summary
	Score float64
}

// Candidates drops the target from a sample and caps the rest at
// sampleSize-1 so the sample never counts the target twice.
func Candidates(targetID string, sample []track.Track, sampleSize int) []track.Track {
	limit := max(sampleSize-1, 0)
	out := make([]track.Track, 0, min(len(sample), limit))
	for _, t := range sample {
		if len(out) == limit {
			break
		}
		if t.ID == targetID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TopK scores every candidate against target and keeps the k best.
// Equal scores are ordered by track id.
func TopK(target feature.Vector, candidates []track.Track, k int) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Scored{
			Track: c.Summarize(),
			Score: feature.Cosine(target, c.Vector()),
		})
	}
	slices.SortStableFunc(scored, func(a, b Scored) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Track.ID, b.Track.ID)
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// Pick returns n items drawn uniformly without replacement from top, in random
// order. When top holds fewer than n items all of them are returned shuffled.
// top is not modified.
func Pick(top []Scored, n int, shuffle func(n int, swap func(i, j int))) []Scored {
	out := slices.Clone(top)
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
