package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/userboard/userboard/config"
	"github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/container"
	"github.com/userboard/userboard/internal/infrastructure/placeholder"
	"github.com/userboard/userboard/internal/infrastructure/sqlite"
	"github.com/userboard/userboard/internal/interface/middleware"
	"github.com/userboard/userboard/internal/router"
	"github.com/userboard/userboard/pkg/helpers"
	"github.com/userboard/userboard/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	repo := sqlite.NewUserRepository(cfg.SQLitePath)
	fetcher := placeholder.NewClient(cfg.UsersAPIURL, cfg.FetchTimeout)
	validate := validation.New()
	svc := application.NewService(repo, fetcher, validate, logger, cfg.StrictRecords)

	// Provide singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRepo(repo)
	container.SetFetcher(fetcher)
	container.SetValidator(validate)
	container.SetService(svc)

	// Run the pipeline once before serving. A fetch or store failure is
	// terminal for this run: surface a readable message and halt.
	if cfg.SyncOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout+30*time.Second)
		n, err := svc.Sync(ctx)
		cancel()
		if err != nil {
			switch {
			case errors.Is(err, placeholder.ErrFetch):
				logger.WithError(err).Fatal("could not reach the users API; aborting this run")
			case errors.Is(err, sqlite.ErrStore):
				logger.WithError(err).Fatal("could not persist users; aborting this run")
			default:
				logger.WithError(err).Fatal("pipeline failed; aborting this run")
			}
		}
		logger.WithField("stored", n).Info("initial sync complete")
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:  cfg.CORSOrigins(),
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("dashboard listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
