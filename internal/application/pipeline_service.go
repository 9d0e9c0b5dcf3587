package application

import (
	"context"
	"expvar"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/userboard/userboard/internal/domain/entity"
	repo "github.com/userboard/userboard/internal/domain/repository"
	"github.com/userboard/userboard/pkg/validation"
)

// UserFetcher is the outbound port to the remote users API.
type UserFetcher interface {
	FetchUsers(ctx context.Context) ([]entity.User, error)
}

var (
	statSyncRuns    = expvar.NewInt("pipeline_sync_runs")
	statRowsStored  = expvar.NewInt("pipeline_rows_stored")
	statRowsSkipped = expvar.NewInt("pipeline_rows_skipped")
	statLastSync    = expvar.NewString("pipeline_last_sync")
)

// Service runs the fetch -> upsert -> read-back -> derive pipeline. Control
// flow is strictly linear; no stage calls back into an earlier one.
type Service struct {
	Repo     repo.UserRepository
	Fetcher  UserFetcher
	Validate *validator.Validate
	Logger   *logrus.Logger

	// Strict skips records that fail field validation instead of storing
	// them. The upstream API aborts only on top-level errors and never
	// validates per-record shape, so this is off by default.
	Strict bool
}

func NewService(r repo.UserRepository, f UserFetcher, v *validator.Validate, logger *logrus.Logger, strict bool) *Service {
	return &Service{Repo: r, Fetcher: f, Validate: v, Logger: logger, Strict: strict}
}

// Sync fetches the full remote set and upserts it whole-row into the store.
// Returns the number of rows stored. Fetch and store failures are terminal
// for this run; nothing partial is persisted.
func (s *Service) Sync(ctx context.Context) (int, error) {
	users, err := s.Fetcher.FetchUsers(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]entity.User, 0, len(users))
	for _, u := range users {
		if u.ID == nil {
			// Without an id the row cannot be keyed.
			s.Logger.WithField("username", textOrNull(u.Username)).Warn("skipping record without id")
			statRowsSkipped.Add(1)
			continue
		}
		if s.Strict {
			if err := s.Validate.Struct(u); err != nil {
				s.Logger.WithFields(logrus.Fields{
					"id":      *u.ID,
					"details": validation.ToDetails(err),
				}).Warn("skipping invalid record")
				statRowsSkipped.Add(1)
				continue
			}
		}
		kept = append(kept, u)
	}

	if err := s.Repo.UpsertAll(ctx, kept); err != nil {
		return 0, err
	}

	statSyncRuns.Add(1)
	statRowsStored.Set(int64(len(kept)))
	statLastSync.Set(time.Now().UTC().Format(time.RFC3339))
	s.Logger.WithFields(logrus.Fields{"fetched": len(users), "stored": len(kept)}).Info("users synced")
	return len(kept), nil
}

// Snapshot reads every stored row and derives the dashboard columns. The
// derived table is recomputed on every call and never written back.
func (s *Service) Snapshot(ctx context.Context) ([]entity.DerivedUser, error) {
	rows, err := s.Repo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return Derive(rows), nil
}
