package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/config"
	"tripwise/internal/repository/postgres"
)

func TestNewDB_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &config.DBConfig{
		Host: "127.0.0.1", Port: 1, User: "tripwise", Password: "tripwise",
		Name: "tripwise", SSLMode: "disable", MaxOpen: 2, MaxIdle: 1,
	}

	db, err := postgres.NewDB(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "connecting to postgres at 127.0.0.1:1")
}
