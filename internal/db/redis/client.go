package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/TheShai81/music-dashboard/internal/db"
)

var _ db.IndexStore = (*Store)(nil)

const (
	readyPollMin = 50 * time.Millisecond
	readyPollMax = time.Second
)

// Config holds connection parameters for the catalog sample index.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// DialTimeout bounds each connection attempt; zero keeps the client default.
	DialTimeout time.Duration
}

func (c Config) clientOption() (rueidis.ClientOption, error) {
	addrs := make([]string, 0, len(c.Addrs))
	for _, a := range c.Addrs {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) == 0 {
		return rueidis.ClientOption{}, errors.New("at least one redis address is required")
	}
	if c.DB < 0 {
		return rueidis.ClientOption{}, fmt.Errorf("redis db must be >= 0, got %d", c.DB)
	}

	opt := rueidis.ClientOption{
		InitAddress: addrs,
		Username:    c.Username,
		Password:    c.Password,
		SelectDB:    c.DB,
		// Sample sets are rebuilt by RENAME; client-side caching would serve stale members.
		DisableCache: true,
	}
	if c.DialTimeout > 0 {
		opt.Dialer.Timeout = c.DialTimeout
	}
	return opt, nil
}

// Store keeps the track sample sets in Redis.
type Store struct {
	client rueidis.Client
}

// NewStore connects to Redis. The connection is not guaranteed usable until
// WaitForReady succeeds.
func NewStore(cfg Config) (*Store, error) {
	opt, err := cfg.clientOption()
	if err != nil {
		return nil, err
	}
	client, err := rueidis.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("connect to sample index: %w", err)
	}
	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.exec(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Ping().Build()
	}).Error(); err != nil {
		return fmt.Errorf("ping sample index: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady pings immediately, then retries with doubling delays until
// the index answers or timeout expires. The last ping error is reported.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delay := readyPollMin
	for {
		lastErr := s.Ping(ctx)
		if lastErr == nil {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("sample index not ready after %s: %w", timeout, errors.Join(ctx.Err(), lastErr))
		case <-timer.C:
		}
		delay = min(delay*2, readyPollMax)
	}
}

// exec builds a single command with the client's builder and runs it.
func (s *Store) exec(ctx context.Context, build func(rueidis.Builder) rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, build(s.client.B()))
}

// isNoSuchKey reports the server error RENAME returns for a missing source.
func isNoSuchKey(err error) bool {
	re, ok := rueidis.IsRedisErr(err)
	return ok && strings.Contains(strings.ToLower(re.Error()), "no such key")
}
