package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/TheShai81/music-dashboard/internal/db"
	"github.com/TheShai81/music-dashboard/internal/db/sqlite"
	"github.com/TheShai81/music-dashboard/internal/domain"
	domuser "github.com/TheShai81/music-dashboard/internal/domain/user"
)

// Repo reads users from the relational store.
type Repo struct {
	db *gorm.DB
}

// New creates a user repository.
func New(g *gorm.DB) *Repo {
	return &Repo{db: g}
}

// Get returns a user by id.
func (r *Repo) Get(ctx context.Context, id int64) (domuser.User, error) {
	var row sqlite.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return toDomain(row), nil
}

// Exists reports whether every given id resolves to a user.
func (r *Repo) Exists(ctx context.Context, ids ...int64) (bool, error) {
	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return true, nil
	}

	var n int64
	err := r.db.WithContext(ctx).Model(&sqlite.User{}).Where("id IN ?", ids).Count(&n).Error
	if err != nil {
		return false, &db.Error{Op: db.OpSelect, Err: err}
	}
	return n == int64(len(unique)), nil
}

// GetMany returns the users with the given ids, keyed by id. Unknown ids are skipped.
func (r *Repo) GetMany(ctx context.Context, ids []int64) (map[int64]domuser.User, error) {
	out := make(map[int64]domuser.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []sqlite.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get users: %w", &db.Error{Op: db.OpSelect, Err: err})
	}
	for _, row := range rows {
		out[row.ID] = toDomain(row)
	}
	return out, nil
}

func toDomain(row sqlite.User) domuser.User {
	return domuser.User{ID: row.ID, Username: row.Username, CreatedAt: row.CreatedAt}
}
