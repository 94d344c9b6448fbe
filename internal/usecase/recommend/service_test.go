package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
)

// --- Mocks ---

type mockProfiles struct {
	vectors map[int64]feature.Vector
}

func (m *mockProfiles) Profiles(_ context.Context, ids []int64) (map[int64]domtaste.Profile, error) {
	out := make(map[int64]domtaste.Profile)
	for _, id := range ids {
		out[id] = domtaste.Profile{UserID: id, Vector: m.vectors[id]}
	}
	return out, nil
}

type mockGraph struct {
	direct map[int64][]int64
	foaf   map[int64][]int64
	err    error
}

func (m *mockGraph) DirectFriends(_ context.Context, id int64) ([]int64, error) {
	return m.direct[id], m.err
}

func (m *mockGraph) FriendsOfFriends(_ context.Context, id int64) ([]int64, error) {
	return m.foaf[id], m.err
}

type mockUsers struct{}

func (mockUsers) Exists(_ context.Context, ids ...int64) (bool, error) {
	for _, id := range ids {
		if id >= 100 {
			return false, nil
		}
	}
	return true, nil
}

func (mockUsers) GetMany(_ context.Context, ids []int64) (map[int64]user.User, error) {
	out := make(map[int64]user.User)
	for _, id := range ids {
		out[id] = user.User{ID: id, Username: fmt.Sprintf("user%d", id)}
	}
	return out, nil
}

type mockTracks struct {
	catalog  []track.Track
	genres   map[string][]int64
	gotOff   int
	gotLimit int
}

func (m *mockTracks) Track(_ context.Context, id string) (track.Track, error) {
	for _, t := range m.catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return track.Track{}, domain.ErrTrackNotFound
}

func (m *mockTracks) qualifying(excluded []int64) []track.Track {
	var out []track.Track
	for _, t := range m.catalog {
		ok := true
		for _, g := range m.genres[t.ID] {
			if slices.Contains(excluded, g) {
				ok = false
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

func (m *mockTracks) CountExcludingGenres(_ context.Context, excluded []int64) (int64, error) {
	return int64(len(m.qualifying(excluded))), nil
}

func (m *mockTracks) ListExcludingGenres(_ context.Context, excluded []int64, offset, limit int) ([]track.Track, error) {
	m.gotOff, m.gotLimit = offset, limit
	q := m.qualifying(excluded)
	if offset > len(q) {
		return nil, nil
	}
	return q[offset:min(offset+limit, len(q))], nil
}

type mockSampler struct {
	tracks []track.Track
	err    error
	gotN   int
}

func (m *mockSampler) SampleRandom(_ context.Context, n int) ([]track.Track, error) {
	m.gotN = n
	if m.err != nil {
		return nil, m.err
	}
	return m.tracks[:min(n, len(m.tracks))], nil
}

type mockGenres struct {
	byUser map[int64][]int64
}

func (m *mockGenres) LikedGenreIDs(_ context.Context, id int64) ([]int64, error) {
	return m.byUser[id], nil
}

// fixedRand always starts at maxOffset and leaves order untouched.
type fixedRand struct{ intN int }

func (f fixedRand) IntN(n int) int            { return min(f.intN, n-1) }
func (fixedRand) Shuffle(int, func(i, j int)) {}

func energy(id string, v float64) track.Track {
	t := track.Track{ID: id, Title: "title-" + id}
	t.Features.Set(feature.Energy, &v)
	t.Features.Set(feature.Valence, ptr(1-v))
	return t
}

func ptr(v float64) *float64 { return &v }

func newTestService() (*Service, *mockTracks, *mockSampler) {
	profiles := &mockProfiles{vectors: map[int64]feature.Vector{
		1: {1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		2: {1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		3: {1, 1, 0, 0, 0, 0, 0, 0, 0.1, 0},
		4: {0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		5: {1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		6: {1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		8: {1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	}}
	graph := &mockGraph{
		direct: map[int64][]int64{1: {2, 3, 4}, 7: {}, 8: {6, 5}},
		foaf:   map[int64][]int64{1: {5, 6}, 7: {}},
	}

	catalog := make([]track.Track, 0, 30)
	for i := range 30 {
		catalog = append(catalog, energy(fmt.Sprintf("t%02d", i), float64(i)/29))
	}
	tracks := &mockTracks{
		catalog: catalog,
		genres: map[string][]int64{
			"t00": {1}, "t01": {1, 2}, "t02": {2}, "t03": {3},
		},
	}
	sampler := &mockSampler{tracks: catalog}
	genres := &mockGenres{byUser: map[int64][]int64{1: {1, 2}}}

	svc := New(profiles, graph, mockUsers{}, tracks, sampler, genres)
	return svc, tracks, sampler
}

// --- Soulmate / RecommendFriend ---

func TestSoulmate(t *testing.T) {
	svc, _, _ := newTestService()

	m, found, err := svc.Soulmate(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a soulmate")
	}
	if m.UserID != 3 || m.Username != "user3" {
		t.Errorf("soulmate = %+v, want user 3", m)
	}
	if m.Score <= 0 || m.Score > 1 {
		t.Errorf("score %v out of range", m.Score)
	}
}

func TestSoulmate_TieGoesToLowestID(t *testing.T) {
	svc, _, _ := newTestService()

	m, found, err := svc.Soulmate(context.Background(), 8)
	if err != nil || !found {
		t.Fatalf("expected a soulmate, got %v, %v", found, err)
	}
	if m.UserID != 5 {
		t.Errorf("tie must go to user 5, got %d", m.UserID)
	}
}

func TestSoulmate_NoFriends(t *testing.T) {
	svc, _, _ := newTestService()

	m, found, err := svc.Soulmate(context.Background(), 7)
	if err != nil {
		t.Fatalf("no friends is not an error, got %v", err)
	}
	if found || m.UserID != 0 {
		t.Errorf("expected no result, got %+v", m)
	}
}

func TestSoulmate_GraphError(t *testing.T) {
	svc, _, _ := newTestService()
	svc.graph = &mockGraph{err: domain.ErrUserNotFound}

	if _, _, err := svc.Soulmate(context.Background(), 1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecommendFriend(t *testing.T) {
	svc, _, _ := newTestService()

	m, found, err := svc.RecommendFriend(context.Background(), 1)
	if err != nil || !found {
		t.Fatalf("expected a recommendation, got %v, %v", found, err)
	}
	// 5 and 6 have identical taste; lowest id wins
	if m.UserID != 5 {
		t.Errorf("recommendation = %d, want 5", m.UserID)
	}
}

func TestRecommendFriend_NoCandidates(t *testing.T) {
	svc, _, _ := newTestService()

	_, found, err := svc.RecommendFriend(context.Background(), 7)
	if err != nil || found {
		t.Fatalf("expected no result without error, got %v, %v", found, err)
	}
}

// --- SimilarTracks ---

func TestSimilarTracks_Bounds(t *testing.T) {
	svc, _, sampler := newTestService()
	svc.WithRand(NewRand(1, 2))
	ctx := context.Background()

	tests := []struct {
		name                      string
		sampleSize, topK, returnN int
		wantMax                   int
	}{
		{"return_n bound", 30, 10, 4, 4},
		{"top_k bound", 30, 3, 10, 3},
		{"sample bound", 3, 50, 10, 2},
		{"sample of one", 1, 50, 10, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := similar.NewRequest("t00", tc.sampleSize, tc.topK, tc.returnN)
			got, err := svc.SimilarTracks(ctx, req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) > tc.wantMax {
				t.Errorf("got %d results, want at most %d", len(got), tc.wantMax)
			}
			for _, s := range got {
				if s.Track.ID == "t00" {
					t.Fatal("target must never be returned")
				}
			}
			if sampler.gotN != tc.sampleSize {
				t.Errorf("sampled %d, want %d", sampler.gotN, tc.sampleSize)
			}
		})
	}
}

func TestSimilarTracks_PicksFromTopK(t *testing.T) {
	svc, _, _ := newTestService()
	svc.WithRand(NewRand(7, 7))

	req := similar.NewRequest("t29", 30, 5, 3)
	got, err := svc.SimilarTracks(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	// closest five to t29 by cosine are t24..t28
	allowed := []string{"t24", "t25", "t26", "t27", "t28"}
	for _, s := range got {
		if !slices.Contains(allowed, s.Track.ID) {
			t.Errorf("%s is outside the top 5", s.Track.ID)
		}
	}
}

func TestSimilarTracks_Errors(t *testing.T) {
	svc, _, sampler := newTestService()
	ctx := context.Background()

	if _, err := svc.SimilarTracks(ctx, similar.NewRequest("", 0, 0, 0)); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.SimilarTracks(ctx, similar.NewRequest("nope", 0, 0, 0)); !errors.Is(err, domain.ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}
	if sampler.gotN != 0 {
		t.Error("catalog must not be sampled for a missing target")
	}

	sampler.err = domain.ErrIndexUnavailable
	if _, err := svc.SimilarTracks(ctx, similar.NewRequest("t01", 0, 0, 0)); !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Errorf("expected ErrIndexUnavailable, got %v", err)
	}
}

// --- Discover ---

func TestDiscover_ExcludesLikedGenres(t *testing.T) {
	svc, tracks, _ := newTestService()
	svc.WithRand(fixedRand{intN: 0})

	got, err := svc.Discover(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 tracks, got %d", len(got))
	}
	for _, tr := range got {
		for _, g := range tracks.genres[tr.ID] {
			if g == 1 || g == 2 {
				t.Errorf("%s carries liked genre %d", tr.ID, g)
			}
		}
	}
	if got[0].ID != "t03" {
		t.Errorf("first qualifying track = %s, want t03", got[0].ID)
	}
}

func TestDiscover_RandomOffsetStaysInRange(t *testing.T) {
	svc, tracks, _ := newTestService()
	svc.WithRand(fixedRand{intN: 1000})

	got, err := svc.Discover(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 27 qualifying tracks, 5 requested: offset may not exceed 22
	if tracks.gotOff != 22 {
		t.Errorf("offset = %d, want 22", tracks.gotOff)
	}
	if len(got) != 5 {
		t.Errorf("expected a full page, got %d", len(got))
	}
}

func TestDiscover_NoLikesAnyTrack(t *testing.T) {
	svc, _, _ := newTestService()
	svc.WithRand(fixedRand{intN: 0})

	got, err := svc.Discover(context.Background(), 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != DefaultDiscoverSize {
		t.Fatalf("expected default size %d, got %d", DefaultDiscoverSize, len(got))
	}
	if got[0].ID != "t00" {
		t.Errorf("empty exclusion must allow any track, first = %s", got[0].ID)
	}
}

func TestDiscover_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Discover(ctx, -1, 5); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Discover(ctx, 100, 5); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLockedRand_Concurrent(t *testing.T) {
	r := NewRand(3, 4)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if v := r.IntN(10); v < 0 || v >= 10 {
					t.Errorf("IntN out of range: %d", v)
				}
				s := []int{1, 2, 3}
				r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
			}
		}()
	}
	wg.Wait()
}
