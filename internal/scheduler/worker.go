package scheduler

import (
	"context"
	"fmt"

	"care_portal_backend/internal/events"
	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/internal/leads/repository"
	"care_portal_backend/platform/config"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, store kvstore.Store, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(store, log),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskQueueOfferReminder, w.handleQueueOfferReminder)

	return w, nil
}

// handleQueueOfferReminder fires when a queued lead has waited the configured
// time without a place offer. The lead is re-read at fire time: it may have
// left the queue or already received an offer since the task was enqueued.
func (w *Worker) handleQueueOfferReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQueueOfferReminderPayload(task)
	if err != nil {
		return err
	}

	lead, err := w.repo.FindByID(ctx, payload.LeadID)
	if err != nil {
		// The lead was removed; nothing to remind about.
		w.log.Warn("queue offer reminder for unknown lead", "leadId", payload.LeadID)
		return nil
	}

	if lead.Status != domain.StatusQueue || lead.QueueOfferSent {
		w.log.Info("queue offer reminder skipped",
			"leadId", lead.ID, "status", string(lead.Status), "offerSent", lead.QueueOfferSent)
		return nil
	}

	w.log.Info("queue offer reminder due", "leadId", lead.ID, "assignedTo", lead.AssignedTo)
	return w.bus.PublishSync(ctx, events.QueueOfferReminderDue{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
	})
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
