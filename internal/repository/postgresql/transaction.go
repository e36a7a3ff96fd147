package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTransaction executes fn inside a database transaction. The transaction
// is exposed to repositories through the context, so every repository call
// made from fn shares it.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either the transaction bound to ctx or the pool.
// Used in repositories to support both transactional and non-transactional
// operations.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

type txManager struct {
	db *database.DB
}

// NewTxManager returns the pool-backed database.TxManager used by services.
func NewTxManager(db *database.DB) database.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, m.db, fn)
}

func (m *txManager) LockUserDate(ctx context.Context, userID string, date time.Time) error {
	return LockUserDate(ctx, m.db, userID, date)
}

func (m *txManager) LockUser(ctx context.Context, userID string) error {
	return LockUser(ctx, m.db, userID)
}

// LockUserDate takes a transaction-scoped advisory lock for one user and
// calendar date. The validation engine holds it across its check-then-insert
// sequence so concurrent timesheet submissions for the same day serialize.
// Released automatically at commit or rollback.
func LockUserDate(ctx context.Context, db *database.DB, userID string, date time.Time) error {
	q := GetQuerier(ctx, db)
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`,
		fmt.Sprintf("%s:%s", userID, date.Format("2006-01-02")))
	if err != nil {
		return fmt.Errorf("acquire user-date lock: %w", err)
	}
	return nil
}

// LockUser takes a transaction-scoped advisory lock for one user. Day-off
// creation holds it so overlapping intervals cannot be inserted by two
// concurrent requests that each saw no conflict.
func LockUser(ctx context.Context, db *database.DB, userID string) error {
	q := GetQuerier(ctx, db)
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID)
	if err != nil {
		return fmt.Errorf("acquire user lock: %w", err)
	}
	return nil
}
