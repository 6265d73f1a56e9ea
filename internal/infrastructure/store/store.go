// Package store opens the repositories for the configured STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/config"
	repo "github.com/oksasatya/campus-events/internal/domain/repository"
	"github.com/oksasatya/campus-events/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/campus-events/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/campus-events/internal/infrastructure/postgres"
)

// Repositories bundles one implementation of every repository plus the
// function that releases the underlying connections.
type Repositories struct {
	Driver        string
	Users         repo.UserRepository
	Events        repo.EventRepository
	Clubs         repo.ClubRepository
	Registrations repo.RegistrationRepository
	Close         func()
}

// NewMemory returns fresh in-memory repositories.
func NewMemory() *Repositories {
	return &Repositories{
		Driver:        config.StoreDriverMemory,
		Users:         memory.NewUserRepository(),
		Events:        memory.NewEventRepository(),
		Clubs:         memory.NewClubRepository(),
		Registrations: memory.NewRegistrationRepository(),
		Close:         func() {},
	}
}

// Open connects to the configured store. For postgres it also applies
// pending migrations; for mongo it ensures indexes.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return &Repositories{
			Driver:        config.StoreDriverPostgres,
			Users:         pginfra.NewUserRepository(pool),
			Events:        pginfra.NewEventRepository(pool),
			Clubs:         pginfra.NewClubRepository(pool),
			Registrations: pginfra.NewRegistrationRepository(pool),
			Close:         pool.Close,
		}, nil

	case config.StoreDriverMongo:
		client, err := mongoinfra.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return &Repositories{
			Driver:        config.StoreDriverMongo,
			Users:         mongoinfra.NewUserRepository(db),
			Events:        mongoinfra.NewEventRepository(db),
			Clubs:         mongoinfra.NewClubRepository(db),
			Registrations: mongoinfra.NewRegistrationRepository(db),
			Close:         func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
