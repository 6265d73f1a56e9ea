//go:build integration

package postgres_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/oksasatya/campus-events/config"
	pginfra "github.com/oksasatya/campus-events/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-events/internal/infrastructure/store"
	"github.com/oksasatya/campus-events/internal/infrastructure/store/storetest"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

func TestPostgresRepositories(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("campus_events"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dir, err := filepath.Abs("../../../db/migrations")
	require.NoError(t, err)
	require.NoError(t, pginfra.RunMigrations(dsn, dir, helpers.NewDiscardLogger()))
	// a second run finds nothing to apply
	require.NoError(t, pginfra.RunMigrations(dsn, dir, helpers.NewDiscardLogger()))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	suite.Run(t, &storetest.RepositorySuite{New: func() *store.Repositories {
		_, err := pool.Exec(ctx, `TRUNCATE users, events, clubs, club_updates, registrations`)
		require.NoError(t, err)
		return &store.Repositories{
			Driver:        config.StoreDriverPostgres,
			Users:         pginfra.NewUserRepository(pool),
			Events:        pginfra.NewEventRepository(pool),
			Clubs:         pginfra.NewClubRepository(pool),
			Registrations: pginfra.NewRegistrationRepository(pool),
			Close:         func() {},
		}
	}})
}

func TestNewPoolRejectsUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pginfra.NewPool(ctx, &config.Config{
		DBHost: "127.0.0.1", DBPort: "1", DBUser: "postgres", DBPassword: "postgres",
		DBName: "campus_events", DBSSLMode: "disable", DBMaxConns: 2, DBMinConns: 0,
		DBMaxConnLife: time.Minute,
	})
	require.Error(t, err)
}
