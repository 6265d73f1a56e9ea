package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/campus-events/config"
	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/internal/infrastructure/store"
	"github.com/oksasatya/campus-events/internal/metrics"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

// seed ensures an admin account exists in the configured store.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer repos.Close()

	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.AppName)
	users := application.NewUserService(repos.Users, repos.Registrations, jwt, cfg.AllowedEmailDomain, metrics.Nop{}, logger)

	u, created, err := users.EnsureAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		logger.WithField("email", u.Email).Infof("seeded admin: id=%s password=%s", u.ID, cfg.SeedAdminPassword)
		return
	}
	logger.WithField("email", u.Email).Infof("admin role ensured for existing user id=%s", u.ID)
}
