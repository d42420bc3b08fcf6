package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/api"
	"github.com/momo1113/babyTracker-sub000/internal/auth"
	"github.com/momo1113/babyTracker-sub000/internal/config"
	"github.com/momo1113/babyTracker-sub000/internal/obs"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

const serviceName = "babytracker"

// application satisfies api.App.
type application struct {
	logger internal.Logger
	repos  *storage.Repositories
}

func (a *application) Logger() internal.Logger                   { return a.logger }
func (a *application) FeedingRepo() storage.FeedingLogRepository { return a.repos.Feeding }
func (a *application) DiaperRepo() storage.DiaperLogRepository   { return a.repos.Diaper }
func (a *application) SleepRepo() storage.SleepLogRepository     { return a.repos.Sleep }
func (a *application) ProfileRepo() storage.ProfileRepository    { return a.repos.Profile }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	var repos *storage.Repositories
	switch cfg.StorageBackend {
	case "file":
		repos, err = storage.NewFileRepositories(cfg.DataDir, logger)
	case "sqlite":
		repos, err = storage.NewSQLiteRepositories(cfg.SQLitePath, cfg.StoreTimeout, logger)
	case "postgres":
		repos, err = storage.NewPostgresRepositories(cfg.PostgresDSN, cfg.StoreTimeout, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer repos.Close()

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.JWTSecret, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthVerifyURL, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(api.RequestIDMiddleware())
	if cfg.TracingEnabled {
		shutdown, err := obs.InitTracer(serviceName, cfg.OTLPEndpoint, cfg.Env)
		if err != nil {
			logger.Fatalf("failed to init tracer: %v", err)
		}
		defer shutdown(context.Background())
		engine.Use(obs.TracingMiddleware(serviceName))
	}
	engine.Use(auth.Middleware(provider, cfg))

	router := api.NewRouter(engine)
	api.RegisterRoutes(router, &application{logger: logger, repos: repos})

	logger.Infof("server running on %s (env=%s, storage=%s)", cfg.HTTPAddr, cfg.Env, cfg.StorageBackend)
	if err := engine.Run(cfg.HTTPAddr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
