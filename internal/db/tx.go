package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// PostgreSQL error codes the domain layer inspects.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeNumericOutOfRange    = "22003"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// maxTxAttempts bounds how many times WithTx runs fn when the database aborts
// the transaction for a concurrency reason.
const maxTxAttempts = 5

// TxFunc is the unit of work run inside a transaction. It must not commit or
// roll back tx itself.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// WithTx runs fn in a single transaction and commits when fn returns nil.
// Serialization failures and deadlocks restart the whole unit of work with a
// fresh transaction; every other error is returned unchanged.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) error {
	backoff := retry.WithMaxRetries(maxTxAttempts-1,
		retry.WithJitterPercent(20, retry.NewExponential(10*time.Millisecond)))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := runTx(ctx, pool, fn)
		if IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func runTx(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// IsRetryable reports whether err is a transaction abort that succeeds when
// the same work is replayed.
func IsRetryable(err error) bool {
	code := ErrorCode(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

// ErrorCode returns the SQLSTATE carried by err, or "" when err is not a
// PostgreSQL error.
func ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// ConstraintName returns the violated constraint carried by err, or "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
