package notification

import (
	"context"
	"testing"

	"care_portal_backend/internal/email"
	"care_portal_backend/internal/events"
	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/internal/leads/repository"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
)

type captureSender struct {
	to   []string
	msgs []email.Message
}

func (s *captureSender) Send(_ context.Context, toEmail string, m email.Message) error {
	s.to = append(s.to, toEmail)
	s.msgs = append(s.msgs, m)
	return nil
}

func notificationFixture(t *testing.T) (*Module, *repository.Repository, *captureSender, events.Bus) {
	t.Helper()
	log := logger.New("test")
	repo := repository.New(kvstore.NewMemoryStore(), log)
	sender := &captureSender{}
	bus := events.NewInMemoryBus(log)

	m := New(sender, repo, "Šampēteris", log)
	m.RegisterHandlers(bus)
	return m, repo, sender, bus
}

func consultedLead(id string) domain.Lead {
	price := 82.0
	return domain.Lead{
		ID:        id,
		Status:    domain.StatusConsultation,
		FirstName: "Anna",
		LastName:  "Ozola",
		Email:     "anna@example.com",
		Consultation: &domain.Consultation{
			CareLevel:    "3",
			Duration:     domain.DurationLong,
			RoomType:     domain.RoomSingle,
			FillScenario: domain.FillInPerson,
			Price:        &price,
		},
	}
}

func TestConsultationReachedSendsFillInstructions(t *testing.T) {
	ctx := context.Background()
	_, repo, sender, bus := notificationFixture(t)
	repo.Upsert(ctx, consultedLead("L-2026-001"))

	err := bus.PublishSync(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    "L-2026-001",
		OldStatus: string(domain.StatusProspect),
		NewStatus: string(domain.StatusConsultation),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.to) != 1 || sender.to[0] != "anna@example.com" {
		t.Fatalf("expected one email to the lead, got %v", sender.to)
	}
	if sender.msgs[0].Subject == "" {
		t.Fatal("empty subject")
	}
}

func TestOtherTransitionsSendNothing(t *testing.T) {
	ctx := context.Background()
	_, repo, sender, bus := notificationFixture(t)
	repo.Upsert(ctx, consultedLead("L-2026-001"))

	err := bus.PublishSync(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    "L-2026-001",
		OldStatus: string(domain.StatusConsultation),
		NewStatus: string(domain.StatusQueue),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.to) != 0 {
		t.Fatalf("expected no email, got %v", sender.to)
	}
}

func TestMissingFillScenarioSkipsQuietly(t *testing.T) {
	ctx := context.Background()
	_, repo, sender, bus := notificationFixture(t)
	lead := consultedLead("L-2026-001")
	lead.Consultation.FillScenario = ""
	repo.Upsert(ctx, lead)

	err := bus.PublishSync(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    "L-2026-001",
		NewStatus: string(domain.StatusConsultation),
	})
	if err != nil {
		t.Fatalf("a missing fill scenario must not error: %v", err)
	}
	if len(sender.to) != 0 {
		t.Fatalf("expected no email, got %v", sender.to)
	}
}

func TestQueueOfferSentEmailsTheLead(t *testing.T) {
	ctx := context.Background()
	_, repo, sender, bus := notificationFixture(t)

	lead := consultedLead("L-2026-001")
	lead.Status = domain.StatusQueue
	lead.QueuedDate = "2026-03-10"
	lead.QueuedTime = "09:00"
	repo.Upsert(ctx, lead)

	err := bus.PublishSync(ctx, events.QueueOfferSent{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    "L-2026-001",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.msgs) != 1 {
		t.Fatalf("expected one offer email, got %d", len(sender.msgs))
	}
}
