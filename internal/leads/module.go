// Package leads provides the lead intake bounded context module.
// This file defines the module that encapsulates all leads setup and route
// registration.
package leads

import (
	apphttp "care_portal_backend/internal/http"
	"care_portal_backend/internal/leads/handler"
	"care_portal_backend/internal/leads/pricing"
	"care_portal_backend/internal/leads/repository"
	"care_portal_backend/internal/leads/service"
	"care_portal_backend/internal/residents"
	"care_portal_backend/platform/config"
	"care_portal_backend/platform/events"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
	"care_portal_backend/platform/validator"
)

// ModuleConfig combines the config interfaces the leads module consumes.
type ModuleConfig interface {
	config.FacilityConfig
	config.SchedulerConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler        *handler.Handler
	pricingHandler *handler.PricingHandler
	service        *service.Service
	repo           *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
// The scheduler is optional; pass nil when reminders are not configured.
func NewModule(store kvstore.Store, bus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger, sched service.QueueOfferScheduler) (*Module, error) {
	rates, err := pricing.Load(cfg.GetPricingTablePath())
	if err != nil {
		return nil, err
	}

	repo := repository.New(store, log)
	residentsRepo := residents.New(store, log)

	svc := service.New(repo, residentsRepo, rates, bus, log, service.Options{
		Facility:      cfg.GetFacilityName(),
		ReminderAfter: cfg.GetQueueOfferReminderAfter(),
		Scheduler:     sched,
	})

	return &Module{
		handler:        handler.New(svc, val),
		pricingHandler: handler.NewPricingHandler(rates),
		service:        svc,
		repo:           repo,
	}, nil
}

func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts the leads and pricing routes under /api/v1.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/leads"))
	m.pricingHandler.RegisterRoutes(ctx.V1.Group("/pricing"))
}

// Service exposes the lead service for cross-module wiring (worker handlers).
func (m *Module) Service() *service.Service { return m.service }

// Repository exposes the lead repository for read-only cross-module access.
func (m *Module) Repository() *repository.Repository { return m.repo }
