package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"care_portal_backend/internal/email"
	"care_portal_backend/internal/events"
	"care_portal_backend/internal/leads/repository"
	"care_portal_backend/internal/notification"
	"care_portal_backend/internal/scheduler"
	"care_portal_backend/platform/config"
	"care_portal_backend/platform/db"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
)

// The worker consumes queue-offer reminder tasks. It needs a store shared
// with the API process, so the memory driver is not accepted here.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "store", cfg.StoreDriver, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := initStore(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize store", "error", err, "driver", cfg.StoreDriver)
		panic("failed to initialize store: " + err.Error())
	}
	if closeStore != nil {
		defer closeStore()
	}

	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg, log)
	notificationModule := notification.New(sender, repository.New(store, log), cfg.GetFacilityName(), log)
	notificationModule.RegisterHandlers(eventBus)

	worker, err := scheduler.NewWorker(cfg, store, eventBus, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker listening", "concurrency", cfg.GetAsynqConcurrency())
	worker.Run(ctx)
	log.Info("worker stopped")
}

func initStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.GetStoreDriver() {
	case "redis":
		store, err := kvstore.NewRedisStore(ctx, cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case "postgres":
		poolCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		pool, err := db.NewPool(poolCtx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("store driver %q cannot be shared with the API process", cfg.GetStoreDriver())
	}
}
