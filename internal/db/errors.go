package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound    = errors.New("db: key not found")
	ErrRecordNotFound = errors.New("db: record not found")
)

// Op constants name the failing command or statement for error context.
const (
	OpSAdd        = "SADD"
	OpSRandMember = "SRANDMEMBER"
	OpSCard       = "SCARD"
	OpRename      = "RENAME"
	OpDel         = "DEL"

	OpMigrate     = "MIGRATE"
	OpSelect      = "SELECT"
	OpInsert      = "INSERT"
	OpDelete      = "DELETE"
	OpTransaction = "TRANSACTION"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
