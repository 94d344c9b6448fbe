package taste

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/TheShai81/music-dashboard/internal/domain"
	"github.com/TheShai81/music-dashboard/internal/domain/feature"
)

// --- Mocks ---

type mockMeans struct {
	byUser map[int64]feature.Raw
	err    error
	calls  int
}

func (m *mockMeans) FeatureMeans(_ context.Context, userID int64) (feature.Raw, error) {
	m.calls++
	return m.byUser[userID], m.err
}

func (m *mockMeans) FeatureMeansOf(_ context.Context, ids []int64) (map[int64]feature.Raw, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[int64]feature.Raw)
	for _, id := range ids {
		if r, ok := m.byUser[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

type mockUsers struct {
	known map[int64]bool
	err   error
}

func (m *mockUsers) Exists(_ context.Context, ids ...int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, id := range ids {
		if !m.known[id] {
			return false, nil
		}
	}
	return true, nil
}

func uniform(v float64) feature.Raw {
	var r feature.Raw
	for _, name := range feature.Order {
		rg, _ := feature.RangeOf(name)
		raw := rg.Min + v*(rg.Max-rg.Min)
		r.Set(name, &raw)
	}
	return r
}

func newTestService() (*Service, *mockMeans) {
	means := &mockMeans{byUser: map[int64]feature.Raw{
		1: uniform(0.8),
		2: uniform(0.8),
	}}
	users := &mockUsers{known: map[int64]bool{1: true, 2: true, 3: true}}
	return New(means, users), means
}

// --- Tests ---

func TestProfile(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range p.Vector {
		if math.Abs(v-0.8) > 1e-9 {
			t.Errorf("coordinate %d = %v, want 0.8", i, v)
		}
	}
}

func TestProfile_NoLikes(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Profile(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Empty() {
		t.Error("user without likes must have the zero profile")
	}
}

func TestProfile_Validation(t *testing.T) {
	svc, means := newTestService()

	_, err := svc.Profile(context.Background(), 0)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if means.calls != 0 {
		t.Error("invalid input must fail before any query")
	}
}

func TestProfile_UnknownUser(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Profile(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfiles_FillsMissing(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Profiles(context.Background(), []int64{1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	if !got[3].Empty() || got[3].UserID != 3 {
		t.Errorf("missing user must get an empty profile, got %+v", got[3])
	}
}

func TestCompatibility(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name  string
		a, b  int64
		want  float64
		delta float64
	}{
		{"identical taste", 1, 2, 1, 1e-9},
		{"no likes", 1, 3, 0, 0},
		{"self", 1, 1, 1, 1e-9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Compatibility(ctx, tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.want) > tc.delta {
				t.Errorf("Compatibility(%d,%d) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCompatibility_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Compatibility(ctx, 1, -4); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Compatibility(ctx, 1, 77); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	boom := errors.New("db down")
	failing := New(&mockMeans{err: boom}, &mockUsers{known: map[int64]bool{1: true, 2: true}})
	if _, err := failing.Compatibility(ctx, 1, 2); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
