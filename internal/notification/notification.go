// Package notification sends emails in response to domain events. It
// subscribes to the event bus so the leads module never needs to know about
// SMTP or templates.
package notification

import (
	"context"
	"fmt"

	"care_portal_backend/internal/email"
	"care_portal_backend/internal/events"
	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/platform/logger"
)

// LeadReader provides the lead lookups the handlers need. Satisfied by the
// leads repository.
type LeadReader interface {
	FindByID(ctx context.Context, id string) (domain.Lead, error)
	All(ctx context.Context) []domain.Lead
}

type Module struct {
	sender   email.Sender
	reader   LeadReader
	facility string
	log      *logger.Logger
}

func New(sender email.Sender, reader LeadReader, facility string, log *logger.Logger) *Module {
	return &Module{sender: sender, reader: reader, facility: facility, log: log}
}

// RegisterHandlers subscribes the notification handlers to the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(m.onStatusChanged))
	bus.Subscribe(events.QueueOfferSent{}.EventName(), events.HandlerFunc(m.onQueueOfferSent))
	bus.Subscribe(events.QueueOfferReminderDue{}.EventName(), events.HandlerFunc(m.onQueueOfferReminderDue))
}

// onStatusChanged emails survey-fill instructions once the consultation is
// recorded. Other transitions produce no outbound mail.
func (m *Module) onStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadStatusChanged)
	if !ok || e.NewStatus != string(domain.StatusConsultation) {
		return nil
	}

	lead, err := m.reader.FindByID(ctx, e.LeadID)
	if err != nil {
		return fmt.Errorf("load lead %s: %w", e.LeadID, err)
	}
	if lead.Email == "" {
		return nil
	}

	msg, err := email.ConsultationEmail(lead, m.facility)
	if err != nil {
		// No fill scenario chosen yet; staff will follow up by phone.
		m.log.Info("consultation email skipped", "leadId", lead.ID, "reason", err.Error())
		return nil
	}

	return m.sender.Send(ctx, lead.Email, msg)
}

func (m *Module) onQueueOfferSent(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QueueOfferSent)
	if !ok {
		return nil
	}

	lead, err := m.reader.FindByID(ctx, e.LeadID)
	if err != nil {
		return fmt.Errorf("load lead %s: %w", e.LeadID, err)
	}
	if lead.Email == "" {
		return nil
	}

	position := domain.QueuePosition(m.reader.All(ctx), lead.ID)
	msg, err := email.QueueOfferEmail(lead, position, m.facility)
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, lead.Email, msg)
}

// onQueueOfferReminderDue surfaces the reminder to staff through the log.
// There is no staff mailbox to target; operators watch the structured log
// stream and the assignedTo field says who should act.
func (m *Module) onQueueOfferReminderDue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QueueOfferReminderDue)
	if !ok {
		return nil
	}

	lead, err := m.reader.FindByID(ctx, e.LeadID)
	if err != nil {
		return fmt.Errorf("load lead %s: %w", e.LeadID, err)
	}

	m.log.Info("queued lead awaits a place offer",
		"leadId", lead.ID,
		"assignedTo", lead.AssignedTo,
		"queuedDate", lead.QueuedDate,
	)
	return nil
}
