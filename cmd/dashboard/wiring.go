package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/config"
	dbRedis "github.com/TheShai81/music-dashboard/internal/db/redis"
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
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

func openDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*sqlite.DB, error) {
	store, err := sqlite.Open(sqlite.Config{
		Path:          cfg.Path,
		SlowThreshold: time.Duration(cfg.SlowQueryMillis) * time.Millisecond,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return store, nil
}

func openIndex(ctx context.Context, cfg config.CatalogConfig) (*dbRedis.Store, error) {
	index, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       cfg.Redis.Addrs,
		Username:    cfg.Redis.Username,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: time.Duration(cfg.Redis.DialTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("create index store: %w", err)
	}
	if err := index.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		index.Close()
		return nil, fmt.Errorf("index not ready: %w", err)
	}
	return index, nil
}

// services is the composition root of the engine.
type services struct {
	taste     *tasteuc.Service
	likes     *likeuc.Service
	social    *socialuc.Service
	recommend *recommenduc.Service
	insights  *insightsuc.Service
	health    *healthuc.Service
}

// buildServices wires repositories into use cases. index is nil unless the
// redis sampler is configured.
func buildServices(cfg config.Config, store *sqlite.DB, index *dbRedis.Store, logger *zap.Logger) services {
	g := store.Gorm()
	users := userrepo.New(g)
	friends := friendshiprepo.New(g)
	likes := likerepo.New(g)
	catalog := catalogrepo.New(g)

	var sampler catalogus.Sampler = catalog
	var indexPinger healthuc.Pinger
	if index != nil {
		sampler = catalogrepo.NewIndexSampler(index, catalog, cfg.Catalog.IndexKey)
		indexPinger = index
	}
	sampler = catalogus.NewInstrumentedSampler(sampler, cfg.Catalog.Sampler, logger)

	taste := tasteuc.New(likes, users)
	social := socialuc.New(friends, users)

	return services{
		taste:     taste,
		likes:     likeuc.New(likes, catalog, users),
		social:    social,
		recommend: recommenduc.New(taste, social, users, catalog, sampler, likes),
		insights:  insightsuc.New(likes, users),
		health:    healthuc.New(store, indexPinger),
	}
}
