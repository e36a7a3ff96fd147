package database

import (
	"context"
	"time"
)

// TxManager runs a function inside a database transaction and exposes the
// advisory locks the validation paths serialize on. Services depend on this
// interface rather than the pool so their logic can be tested without a
// database.
type TxManager interface {
	// WithinTransaction runs fn inside a transaction. The transaction is
	// carried in fn's context, so repository calls made from fn share it.
	// Rolled back when fn errors, committed otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// LockUserDate takes a transaction-scoped advisory lock for one user and
	// calendar date.
	LockUserDate(ctx context.Context, userID string, date time.Time) error

	// LockUser takes a transaction-scoped advisory lock for one user.
	LockUser(ctx context.Context, userID string) error
}
