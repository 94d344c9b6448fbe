package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/TheShai81/music-dashboard/internal/db/redis"
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
	"github.com/TheShai81/music-dashboard/internal/domain/insights"
	"github.com/TheShai81/music-dashboard/internal/domain/similar"
	domsocial "github.com/TheShai81/music-dashboard/internal/domain/social"
	domtaste "github.com/TheShai81/music-dashboard/internal/domain/taste"
	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/domain/user"
	catalogrepo "github.com/TheShai81/music-dashboard/internal/repository/catalog"
	friendshiprepo "github.com/TheShai81/music-dashboard/internal/repository/friendship"
	likerepo "github.com/TheShai81/music-dashboard/internal/repository/like"
	userrepo "github.com/TheShai81/music-dashboard/internal/repository/user"
	catalogus "github.com/TheShai81/music-dashboard/internal/usecase/catalog"
	healthuc "github.com/TheShai81/music-dashboard/internal/usecase/health"
	insightsuc "github.com/TheShai81/music-dashboard/internal/usecase/insights"
	likeuc "github.com/TheShai81/music-dashboard/internal/usecase/like"
	recommenduc "github.com/TheShai81/music-dashboard/internal/usecase/recommend"
	socialuc "github.com/TheShai81/music-dashboard/internal/usecase/social"
	tasteuc "github.com/TheShai81/music-dashboard/internal/usecase/taste"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can swap the use cases.
type tasteUseCase interface {
	Profile(ctx context.Context, userID int64) (domtaste.Profile, error)
	Compatibility(ctx context.Context, userID, otherID int64) (float64, error)
}

type socialUseCase interface {
	Friends(ctx context.Context, userID int64) ([]user.User, error)
	Suggestions(ctx context.Context, userID int64) ([]user.User, error)
	Befriend(ctx context.Context, userID, friendID int64) (bool, error)
}

type likeUseCase interface {
	Toggle(ctx context.Context, userID int64, trackID string) (bool, error)
	Liked(ctx context.Context, userID int64) ([]track.Liked, error)
}

type recommendUseCase interface {
	Soulmate(ctx context.Context, userID int64) (domsocial.Match, bool, error)
	RecommendFriend(ctx context.Context, userID int64) (domsocial.Match, bool, error)
	SimilarTracks(ctx context.Context, req similar.Request) ([]similar.Scored, error)
	Discover(ctx context.Context, userID int64, n int) ([]track.Track, error)
}

type insightsUseCase interface {
	Dashboard(ctx context.Context, userID int64) (insights.Dashboard, error)
}

// Client is the embedded engine entry point.
type Client struct {
	store        *sqlite.DB
	index        *dbRedis.Store
	tasteSvc     tasteUseCase
	socialSvc    socialUseCase
	likeSvc      likeUseCase
	recommendSvc recommendUseCase
	insightsSvc  insightsUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// Open connects to the catalog database and, if configured, the Redis index.
// The provided context bounds the readiness checks.
func Open(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.dbPath == "" {
		return nil, errors.New("dashboard: database path required (use WithSQLite)")
	}
	if cfg.indexKey == "" {
		cfg.indexKey = DefaultIndexKey
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(sqlite.Config{Path: cfg.dbPath, SlowThreshold: cfg.slowThreshold})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("dashboard: database not reachable: %w", err)
	}
	if cfg.migrate {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	var index *dbRedis.Store
	if len(cfg.indexAddrs) > 0 {
		index, err = openIndex(ctx, cfg)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	return wireClient(store, index, cfg, obs), nil
}

func openIndex(ctx context.Context, cfg *clientConfig) (*dbRedis.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.indexAddrs,
		Password: cfg.indexPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: create index store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("dashboard: index not ready: %w", err)
	}
	return s, nil
}

func wireClient(store *sqlite.DB, index *dbRedis.Store, cfg *clientConfig, obs *observer) *Client {
	g := store.Gorm()
	users := userrepo.New(g)
	friends := friendshiprepo.New(g)
	likes := likerepo.New(g)
	catalog := catalogrepo.New(g)

	var sampler catalogus.Sampler = catalog
	var indexPinger healthuc.Pinger
	if index != nil {
		sampler = catalogrepo.NewIndexSampler(index, catalog, cfg.indexKey)
		indexPinger = index
	}

	taste := tasteuc.New(likes, users)
	social := socialuc.New(friends, users)

	return &Client{
		store:        store,
		index:        index,
		tasteSvc:     taste,
		socialSvc:    social,
		likeSvc:      likeuc.New(likes, catalog, users),
		recommendSvc: recommenduc.New(taste, social, users, catalog, sampler, likes),
		insightsSvc:  insightsuc.New(likes, users),
		healthSvc:    healthuc.New(store, indexPinger),
		obs:          obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.index != nil {
		c.index.Close()
	}
	if c.store != nil {
		_ = c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Users returns the taste and friendship service.
func (c *Client) Users() *UserService {
	return &UserService{taste: c.tasteSvc, social: c.socialSvc, obs: c.obs}
}

// Likes returns the like service.
func (c *Client) Likes() *LikeService {
	return &LikeService{svc: c.likeSvc, obs: c.obs}
}

// Recommend returns the recommendation service.
func (c *Client) Recommend() *RecommendService {
	return &RecommendService{svc: c.recommendSvc, obs: c.obs}
}

// Insights returns the dashboard metrics service.
func (c *Client) Insights() *InsightsService {
	return &InsightsService{svc: c.insightsSvc, obs: c.obs}
}
