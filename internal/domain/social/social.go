// Package social models the undirected friendship graph and friend matching.
package social

import (
	"slices"
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain"
)

// Edge is an undirected friendship stored with Low < High.
type Edge struct {
	Low       int64
	High      int64
	CreatedAt time.Time
}

// NewEdge orders the pair canonically and rejects self edges.
func NewEdge(a, b int64, createdAt time.Time) (Edge, error) {
	if err := domain.ValidateUserID("user_id", a); err != nil {
		return Edge{}, err
	}
	if err := domain.ValidateUserID("friend_id", b); err != nil {
		return Edge{}, err
	}
	if a == b {
		return Edge{}, domain.ErrSelfFriendship
	}
	if a > b {
		a, b = b, a
	}
	return Edge{Low: a, High: b, CreatedAt: createdAt}, nil
}

// Other returns the endpoint that is not id.
func (e Edge) Other(id int64) int64 {
	if e.Low == id {
		return e.High
	}
	return e.Low
}

// FriendsOfFriends returns the users exactly two hops from self: the union of
// every direct friend's friends, minus self and minus the direct friends.
// Each candidate appears once, in ascending order.
func FriendsOfFriends(self int64, direct []int64, friendsOf map[int64][]int64) []int64 {
	exclude := make(map[int64]struct{}, len(direct)+1)
	exclude[self] = struct{}{}
	for _, f := range direct {
		exclude[f] = struct{}{}
	}

	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	for _, f := range direct {
		for _, ff := range friendsOf[f] {
			if _, skip := exclude[ff]; skip {
				continue
			}
			if _, dup := seen[ff]; dup {
				continue
			}
			seen[ff] = struct{}{}
			out = append(out, ff)
		}
	}
	slices.Sort(out)
	return out
}

// Match is a scored candidate user.
type Match struct {
	UserID   int64
	Username string
	Score    float64
}

// Best returns the highest-scoring match. Ties go to the lowest user id.
// The second result is false when there are no candidates.
func Best(candidates []Match) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score || (c.Score == best.Score && c.UserID < best.UserID) {
			best = c
		}
	}
	return best, true
}
