package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/TheShai81/music-dashboard/internal/db"
)

// SAdd adds members to the set at key. An empty member list is a no-op.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	if err := s.exec(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Sadd().Key(key).Member(members...).Build()
	}).Error(); err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SRandMember returns up to count distinct random members of the set at key.
// A missing key yields an empty slice.
func (s *Store) SRandMember(ctx context.Context, key string, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	members, err := s.exec(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Srandmember().Key(key).Count(int64(count)).Build()
	}).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return []string{}, nil
		}
		return nil, &db.Error{Op: db.OpSRandMember, Err: err}
	}
	return members, nil
}

// SCard returns the cardinality of the set at key.
func (s *Store) SCard(ctx context.Context, key string) (int64, error) {
	n, err := s.exec(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Scard().Key(key).Build()
	}).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	return n, nil
}

// Rename atomically replaces dst with src.
func (s *Store) Rename(ctx context.Context, src, dst string) error {
	if err := s.exec(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Rename().Key(src).Newkey(dst).Build()
	}).Error(); err != nil {
		if isNoSuchKey(err) {
			return db.ErrKeyNotFound
		}
		return &db.Error{Op: db.OpRename, Err: err}
	}
	return nil
}

// Del removes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	if err := s.exec(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Del().Key(key).Build()
	}).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
