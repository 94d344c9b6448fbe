// Package user holds the read-only user projection used by the engine.
package user

import "time"

// User is a registered platform user.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}
