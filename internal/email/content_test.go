package email

import (
	"errors"
	"strings"
	"testing"

	"care_portal_backend/internal/leads/domain"
)

func emailTestLead(fillScenario string) domain.Lead {
	price := 82.0
	return domain.Lead{
		ID:        "L-2026-001",
		Status:    domain.StatusConsultation,
		FirstName: "Anna",
		LastName:  "Ozola",
		Email:     "anna@example.com",
		Consultation: &domain.Consultation{
			Facility:     "Šampēteris",
			CareLevel:    "3",
			Duration:     domain.DurationLong,
			RoomType:     domain.RoomSingle,
			FillScenario: fillScenario,
			Price:        &price,
		},
	}
}

func TestConsultationEmail_InPerson(t *testing.T) {
	msg, err := ConsultationEmail(emailTestLead(domain.FillInPerson), "Šampēteris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Subject, "klātienē") || !strings.Contains(msg.Subject, "Šampēteris") {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Labdien, Anna Ozola!") {
		t.Fatalf("greeting missing: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "82.00 EUR") {
		t.Fatalf("price line missing: %q", msg.Body)
	}
}

func TestConsultationEmail_Remote(t *testing.T) {
	msg, err := ConsultationEmail(emailTestLead(domain.FillRemote), "Šampēteris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Subject, "attālināti") {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "attālinātai aizpildei") {
		t.Fatalf("remote instructions missing: %q", msg.Body)
	}
}

func TestConsultationEmail_NoConsultation(t *testing.T) {
	lead := emailTestLead(domain.FillInPerson)
	lead.Consultation = nil

	if _, err := ConsultationEmail(lead, "Šampēteris"); !errors.Is(err, ErrNoConsultation) {
		t.Fatalf("expected ErrNoConsultation, got %v", err)
	}
}

func TestConsultationEmail_UnknownFillScenario(t *testing.T) {
	_, err := ConsultationEmail(emailTestLead("carrier-pigeon"), "Šampēteris")
	if !errors.Is(err, ErrUnknownFillScenario) {
		t.Fatalf("expected ErrUnknownFillScenario, got %v", err)
	}
	if !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Fatalf("error should name the scenario: %v", err)
	}
}

func TestQueueOfferEmail(t *testing.T) {
	lead := emailTestLead(domain.FillInPerson)
	lead.Status = domain.StatusQueue

	msg, err := QueueOfferEmail(lead, 3, "Šampēteris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Subject, "Piedāvājums no rindas") {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Jūsu vieta rindā: 3.") {
		t.Fatalf("queue position missing: %q", msg.Body)
	}
}

func TestQueueOfferEmail_NoConsultation(t *testing.T) {
	lead := emailTestLead(domain.FillInPerson)
	lead.Consultation = nil

	if _, err := QueueOfferEmail(lead, 1, "Šampēteris"); !errors.Is(err, ErrNoConsultation) {
		t.Fatalf("expected ErrNoConsultation, got %v", err)
	}
}

func TestEmailBodies_NoPriceLineWithoutPrice(t *testing.T) {
	lead := emailTestLead(domain.FillRemote)
	lead.Consultation.Price = nil

	msg, err := ConsultationEmail(lead, "Šampēteris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(msg.Body, "Diennakts maksa") {
		t.Fatalf("price line present without a price: %q", msg.Body)
	}
	if strings.Contains(msg.Body, "\n\n\n") {
		t.Fatalf("blank line not collapsed: %q", msg.Body)
	}
}
