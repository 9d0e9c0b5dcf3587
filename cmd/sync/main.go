package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/userboard/userboard/config"
	"github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/infrastructure/placeholder"
	"github.com/userboard/userboard/internal/infrastructure/sqlite"
	"github.com/userboard/userboard/pkg/helpers"
	"github.com/userboard/userboard/pkg/validation"
)

// One-shot pipeline run without the dashboard server: fetch the remote user
// set and upsert it into the local store.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	repo := sqlite.NewUserRepository(cfg.SQLitePath)
	fetcher := placeholder.NewClient(cfg.UsersAPIURL, cfg.FetchTimeout)
	svc := application.NewService(repo, fetcher, validation.New(), logger, cfg.StrictRecords)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout+30*time.Second)
	defer cancel()

	n, err := svc.Sync(ctx)
	if err != nil {
		logger.WithError(err).Fatal("sync failed")
	}
	fmt.Printf("synced %d users into %s\n", n, cfg.SQLitePath)
}
