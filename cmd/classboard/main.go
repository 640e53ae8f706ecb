package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/classboard/classboard/internal/controller"
	"github.com/classboard/classboard/internal/httpapi/handlers"
	"github.com/classboard/classboard/internal/httpapi/server"
	"github.com/classboard/classboard/pkg/cache"
	"github.com/classboard/classboard/pkg/cache/inmemory"
	"github.com/classboard/classboard/pkg/cache/redis"
	"github.com/classboard/classboard/pkg/catalog"
	"github.com/classboard/classboard/pkg/config"
	"github.com/classboard/classboard/pkg/session"
	"github.com/classboard/classboard/pkg/store"
	"github.com/classboard/classboard/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.App.Environment != "local" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cacheClient, err := buildCache(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize cache backend")
	}

	cat, err := catalog.New(&catalog.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		CheckoutTimeout: cfg.Database.CheckoutTimeout,
		CacheTTL:        cfg.Database.CacheTTL,
	}, cacheClient)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open classroom catalog")
	}
	defer cat.Close()

	if err := cat.Seed(ctx, seedClassrooms(cfg)); err != nil {
		logrus.WithError(err).Fatal("failed to seed classroom catalog")
	}

	dataStore, err := store.New(cfg.Seed.Teacher)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize registry store")
	}

	tracker, err := session.NewAuditTracker(cfg.Session.SigningKey)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize audit tracker")
	}

	h := handlers.NewHandlers(cfg, dataStore, tracker, cat)
	apiServer := server.NewAPIServer(cfg, h)

	periodicTasks := controller.NewPeriodicTasksController(cat, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(apiServer.Start)
	g.Go(func() error {
		return periodicTasks.Start(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Fatal("classboard exited with error")
	}
	logrus.Info("classboard stopped")
}

// buildCache constructs the configured classroom cache backend
// "none" disables caching; reads then always hit the database
func buildCache(ctx context.Context, cfg *config.AppConfig) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "inmemory":
		return inmemory.NewCache(&inmemory.Config{
			DefaultExpiration: cfg.Cache.InMemory.DefaultExpiration,
			CleanupInterval:   cfg.Cache.InMemory.CleanupInterval,
		})
	case "redis":
		return redis.NewCache(ctx, &redis.Config{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case "none":
		return nil, nil
	default:
		return nil, errors.New("unknown cache backend: " + cfg.Cache.Backend)
	}
}

// seedClassrooms resolves the classroom seed: file, inline list, or defaults
func seedClassrooms(cfg *config.AppConfig) []types.Classroom {
	if cfg.Seed.ClassroomsFile != "" {
		rooms, err := catalog.LoadSeedFile(cfg.Seed.ClassroomsFile)
		if err != nil {
			logrus.WithError(err).Fatal("failed to load classroom seed file")
		}
		return rooms
	}
	if len(cfg.Seed.Classrooms) > 0 {
		return cfg.Seed.Classrooms
	}
	return catalog.DefaultSeed
}
