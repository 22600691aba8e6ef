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
	apphttp "care_portal_backend/internal/http"
	"care_portal_backend/internal/http/router"
	"care_portal_backend/internal/leads"
	"care_portal_backend/internal/leads/service"
	"care_portal_backend/internal/notification"
	"care_portal_backend/internal/scheduler"
	"care_portal_backend/platform/config"
	"care_portal_backend/platform/db"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
	"care_portal_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, health, closeStore, err := initStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize store", "error", err, "driver", cfg.StoreDriver)
		panic("failed to initialize store: " + err.Error())
	}
	if closeStore != nil {
		defer closeStore()
	}
	log.Info("store initialized", "driver", cfg.StoreDriver)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := email.NewSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(store, eventBus, val, cfg, log, reminderScheduler)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, leadsModule.Repository(), cfg.GetFacilityName(), log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initStore builds the key-value store selected by STORE_DRIVER. The memory
// driver has no backing connection, so it returns a nil health checker and
// no close func.
func initStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (kvstore.Store, apphttp.HealthChecker, func(), error) {
	switch cfg.GetStoreDriver() {
	case "memory":
		return kvstore.NewMemoryStore(), nil, nil, nil

	case "redis":
		var store *kvstore.RedisStore
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			s, err := kvstore.NewRedisStore(ctx, cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
			if err != nil {
				return err
			}
			store = s
			return nil
		}); err != nil {
			return nil, nil, nil, err
		}
		return store, store, func() { _ = store.Close() }, nil

	case "postgres":
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg)
		}); err != nil {
			return nil, nil, nil, err
		}
		log.Info("database migrations complete")

		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return kvstore.NewPostgresStore(pool), db.NewPoolAdapter(pool), pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.GetStoreDriver())
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (service.QueueOfferScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; queue offer reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
