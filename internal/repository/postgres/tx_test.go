package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/repository/postgres"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"wrapped", fmt.Errorf("committing transaction: %w", &pgconn.PgError{Code: "40001"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, postgres.IsRetryable(tc.err))
		})
	}
}

func TestRetryOnConflict_SucceedsAfterConflicts(t *testing.T) {
	calls := 0
	err := postgres.RetryOnConflict(context.Background(), 5, func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnConflict_GivesUp(t *testing.T) {
	calls := 0
	err := postgres.RetryOnConflict(context.Background(), 3, func() error {
		calls++
		return &pgconn.PgError{Code: "40P01"}
	})
	assert.Equal(t, 3, calls)
	assert.True(t, postgres.IsRetryable(err))
	assert.ErrorContains(t, err, "after 3 attempts")
}

func TestRetryOnConflict_NonRetryableReturnsImmediately(t *testing.T) {
	sentinel := errors.New("not found")
	calls := 0
	err := postgres.RetryOnConflict(context.Background(), 5, func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestRetryOnConflict_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := postgres.RetryOnConflict(ctx, 5, func() error {
		calls++
		cancel()
		return &pgconn.PgError{Code: "40001"}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
