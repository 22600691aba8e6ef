// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"care_portal_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new prospect is captured.
type LeadCreated struct {
	BaseEvent
	LeadID     string `json:"leadId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Source     string `json:"source,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published on every lifecycle transition.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// AgreementCreated is published when a lead reaches the agreement status.
type AgreementCreated struct {
	BaseEvent
	LeadID          string `json:"leadId"`
	AgreementNumber string `json:"agreementNumber"`
	ResidentName    string `json:"residentName"`
	Overridden      bool   `json:"overridden"`
}

func (e AgreementCreated) EventName() string { return "leads.agreement.created" }

// LeadQueued is published when a lead joins the waiting list.
type LeadQueued struct {
	BaseEvent
	LeadID     string `json:"leadId"`
	QueuedDate string `json:"queuedDate"`
	QueuedTime string `json:"queuedTime"`
	AssignedTo string `json:"assignedTo,omitempty"`
}

func (e LeadQueued) EventName() string { return "leads.lead.queued" }

// QueueOfferSent is published when a place offer goes out to a queued lead.
type QueueOfferSent struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e QueueOfferSent) EventName() string { return "leads.queue.offer_sent" }

// QueueOfferReminderDue is published by the scheduler worker when a queued
// lead has waited long enough that staff should send an offer.
type QueueOfferReminderDue struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e QueueOfferReminderDue) EventName() string { return "leads.queue.offer_reminder_due" }

// LeadCancelled is published when a lead reaches the cancelled status.
type LeadCancelled struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Reason string `json:"reason"`
}

func (e LeadCancelled) EventName() string { return "leads.lead.cancelled" }
