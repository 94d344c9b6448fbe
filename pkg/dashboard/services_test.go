package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/feature"
	"github.com/TheShai81/music-dashboard/internal/domain/insights"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
)

// --- UserService ---

func TestUserService_Profile(t *testing.T) {
	var v feature.Vector
	v[2] = 0.75
	mock := &mockTasteUC{
		profileFn: func(_ context.Context, userID int64) (domtaste.Profile, error) {
			return domtaste.Profile{UserID: userID, Vector: v}, nil
		},
	}

	svc := &UserService{taste: mock}
	p, err := svc.Profile(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.UserID != 7 {
		t.Errorf("UserID = %d, want 7", p.UserID)
	}
	if len(p.Features) != feature.Dimensions {
		t.Fatalf("features = %d, want %d", len(p.Features), feature.Dimensions)
	}
	if p.Features["energy"] != 0.75 {
		t.Errorf("energy = %v, want 0.75", p.Features["energy"])
	}
}

func TestUserService_Profile_NotFound(t *testing.T) {
	mock := &mockTasteUC{
		profileFn: func(_ context.Context, _ int64) (domtaste.Profile, error) {
			return domtaste.Profile{}, domain.ErrUserNotFound
		},
	}

	svc := &UserService{taste: mock}
	_, err := svc.Profile(context.Background(), 99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("user not found must also match ErrNotFound, got %v", err)
	}
}

func TestUserService_Compatibility(t *testing.T) {
	mock := &mockTasteUC{
		compatibilityFn: func(_ context.Context, a, b int64) (float64, error) {
			if a != 1 || b != 2 {
				t.Errorf("ids = %d,%d want 1,2", a, b)
			}
			return 0.5, nil
		},
	}

	svc := &UserService{taste: mock}
	got, err := svc.Compatibility(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.5 {
		t.Errorf("score = %v, want 0.5", got)
	}
}

func TestUserService_Friends(t *testing.T) {
	mock := &mockSocialUC{
		friendsFn: func(_ context.Context, _ int64) ([]user.User, error) {
			return []user.User{{ID: 2, Username: "ben"}, {ID: 3, Username: "cat"}}, nil
		},
	}

	svc := &UserService{social: mock}
	friends, err := svc.Friends(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(friends) != 2 || friends[1].Username != "cat" {
		t.Errorf("friends = %+v", friends)
	}
}

func TestUserService_Befriend_Self(t *testing.T) {
	mock := &mockSocialUC{
		befriendFn: func(_ context.Context, a, b int64) (bool, error) {
			_, err := domsocial.NewEdge(a, b, time.Now())
			return false, err
		},
	}

	svc := &UserService{social: mock}
	_, err := svc.Befriend(context.Background(), 4, 4)
	if !errors.Is(err, ErrSelfFriendship) {
		t.Fatalf("expected ErrSelfFriendship, got %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("self friendship must match ErrInvalidArgument, got %v", err)
	}
}

// --- LikeService ---

func TestLikeService_Toggle(t *testing.T) {
	mock := &mockLikeUC{
		toggleFn: func(_ context.Context, userID int64, trackID string) (bool, error) {
			if userID != 1 || trackID != "t1" {
				t.Errorf("args = %d,%q", userID, trackID)
			}
			return true, nil
		},
	}

	svc := &LikeService{svc: mock}
	liked, err := svc.Toggle(context.Background(), 1, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !liked {
		t.Error("expected liked = true")
	}
}

func TestLikeService_List(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := &mockLikeUC{
		likedFn: func(_ context.Context, _ int64) ([]track.Liked, error) {
			return []track.Liked{{Track: track.Track{ID: "t9", Title: "Nine", Popularity: 12}, LikedAt: at}}, nil
		},
	}

	svc := &LikeService{svc: mock}
	list, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].ID != "t9" || list[0].Popularity != 12 || !list[0].LikedAt.Equal(at) {
		t.Errorf("liked = %+v", list[0])
	}
}

// --- RecommendService ---

func TestRecommendService_Soulmate(t *testing.T) {
	mock := &mockRecommendUC{
		soulmateFn: func(_ context.Context, _ int64) (domsocial.Match, bool, error) {
			return domsocial.Match{UserID: 3, Username: "cat", Score: 0.87654}, true, nil
		},
	}

	svc := &RecommendService{svc: mock}
	m, found, err := svc.Soulmate(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || m.UserID != 3 {
		t.Fatalf("match = %+v found=%v", m, found)
	}
	if m.Percent() != 87.65 {
		t.Errorf("Percent = %v, want 87.65", m.Percent())
	}
}

func TestRecommendService_Friend_NotFound(t *testing.T) {
	mock := &mockRecommendUC{
		friendFn: func(_ context.Context, _ int64) (domsocial.Match, bool, error) {
			return domsocial.Match{}, false, nil
		},
	}

	svc := &RecommendService{svc: mock}
	_, found, err := svc.Friend(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found = false")
	}
}

func TestRecommendService_SimilarTracks_Options(t *testing.T) {
	tests := []struct {
		name           string
		opts           []SimilarOption
		sample, k, ret int
	}{
		{"defaults", nil, similar.DefaultSampleSize, similar.DefaultTopK, similar.DefaultReturnN},
		{"explicit", []SimilarOption{SampleSize(300), TopK(20), ReturnN(5)}, 300, 20, 5},
		{"capped", []SimilarOption{SampleSize(1 << 20)}, similar.MaxSampleSize, similar.DefaultTopK, similar.DefaultReturnN},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got similar.Request
			mock := &mockRecommendUC{
				similarFn: func(_ context.Context, req similar.Request) ([]similar.Scored, error) {
					got = req
					return []similar.Scored{{Track: track.Summary{ID: "x", Title: "X"}, Score: 0.9}}, nil
				},
			}

			svc := &RecommendService{svc: mock}
			out, err := svc.SimilarTracks(context.Background(), "t1", tc.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.TrackID() != "t1" {
				t.Errorf("TrackID = %q, want t1", got.TrackID())
			}
			if got.SampleSize() != tc.sample || got.TopK() != tc.k || got.ReturnN() != tc.ret {
				t.Errorf("request = %d/%d/%d, want %d/%d/%d",
					got.SampleSize(), got.TopK(), got.ReturnN(), tc.sample, tc.k, tc.ret)
			}
			if len(out) != 1 || out[0].ID != "x" || out[0].Score != 0.9 {
				t.Errorf("out = %+v", out)
			}
		})
	}
}

func TestRecommendService_SimilarTracks_Error(t *testing.T) {
	mock := &mockRecommendUC{
		similarFn: func(_ context.Context, _ similar.Request) ([]similar.Scored, error) {
			return nil, domain.ErrTrackNotFound
		},
	}

	svc := &RecommendService{svc: mock}
	_, err := svc.SimilarTracks(context.Background(), "missing")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestRecommendService_Discover(t *testing.T) {
	mock := &mockRecommendUC{
		discoverFn: func(_ context.Context, _ int64, n int) ([]track.Track, error) {
			if n != 0 {
				t.Errorf("size = %d, want 0 passed through", n)
			}
			return []track.Track{{ID: "t5"}, {ID: "t6"}}, nil
		},
	}

	svc := &RecommendService{svc: mock}
	out, err := svc.Discover(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "t5" {
		t.Errorf("out = %+v", out)
	}
}

// --- InsightsService ---

func TestInsightsService_Dashboard(t *testing.T) {
	mock := &mockInsightsUC{
		dashboardFn: func(_ context.Context, userID int64) (insights.Dashboard, error) {
			return insights.Dashboard{
				UserID:     userID,
				LikeCount:  3,
				Obscurity:  50,
				MusicAge:   12,
				TopGenres:  []insights.Ranked{{ID: "1", Name: "rock", Count: 2}},
				TopArtists: []insights.Ranked{},
			}, nil
		},
	}

	svc := &InsightsService{svc: mock}
	d, err := svc.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.LikeCount != 3 || d.MusicAge != 12 || d.Obscurity != 50 {
		t.Errorf("dashboard = %+v", d)
	}
	if len(d.TopGenres) != 1 || d.TopGenres[0].Name != "rock" || d.TopGenres[0].Count != 2 {
		t.Errorf("top genres = %+v", d.TopGenres)
	}
	if d.TopArtists == nil {
		t.Error("empty ranking must stay non-nil")
	}
}
