package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// SQLSTATE codes that mean the transaction lost a race and can be replayed.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// IsRetryable reports whether err is a serialization failure or deadlock.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}

// RunInTx runs fn in a SERIALIZABLE transaction, replaying it up to attempts
// times when Postgres aborts it with a retryable conflict. fn must not have
// side effects outside tx.
func RunInTx(ctx context.Context, db *sqlx.DB, attempts int, fn func(tx *sqlx.Tx) error) error {
	if attempts < 1 {
		attempts = 1
	}
	return retryOnConflict(ctx, attempts, func() error {
		return runOnce(ctx, db, fn)
	})
}

func retryOnConflict(ctx context.Context, attempts int, run func() error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		err = run()
		if err == nil || !IsRetryable(err) {
			return err
		}
		zerolog.Ctx(ctx).Debug().Err(err).Int("attempt", i).Msg("transaction conflict, retrying")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i) * 10 * time.Millisecond):
		}
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", attempts, err)
}

func runOnce(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
