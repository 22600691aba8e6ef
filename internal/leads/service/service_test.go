package service

import (
	"context"
	"testing"
	"time"

	"care_portal_backend/internal/events"
	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/internal/leads/pricing"
	"care_portal_backend/internal/leads/repository"
	"care_portal_backend/internal/leads/transport"
	"care_portal_backend/internal/residents"
	"care_portal_backend/platform/apperr"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
)

type fixture struct {
	svc       *Service
	repo      *repository.Repository
	residents *residents.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New("test")
	store := kvstore.NewMemoryStore()
	repo := repository.New(store, log)
	res := residents.New(store, log)
	bus := events.NewInMemoryBus(log)

	svc := New(repo, res, pricing.Default(), bus, log, Options{Facility: "Šampēteris"})
	svc.clock = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return &fixture{svc: svc, repo: repo, residents: res}
}

func validCreateRequest() transport.CreateLeadRequest {
	return transport.CreateLeadRequest{
		FirstName: "Anna",
		LastName:  "Ozola",
		Email:     "anna@example.com",
		Phone:     "+371 20000000",
	}
}

func (f *fixture) createProspect(t *testing.T) transport.LeadResponse {
	t.Helper()
	lead, err := f.svc.CreateProspect(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create prospect failed: %v", err)
	}
	return lead
}

func (f *fixture) toConsultation(t *testing.T, id string) transport.LeadResponse {
	t.Helper()
	lead, err := f.svc.UpgradeToLead(context.Background(), id, transport.ConsultationRequest{
		CareLevel:    "3",
		Duration:     domain.DurationLong,
		RoomType:     domain.RoomSingle,
		FillScenario: domain.FillInPerson,
	})
	if err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	return lead
}

func (f *fixture) toSurveyFilled(t *testing.T, id string) transport.LeadResponse {
	t.Helper()
	lead, err := f.svc.SaveSurvey(context.Background(), id, transport.SurveyRequest{
		ResidentName:         "Marta Liepa",
		ResidentPhone:        "+37120000001",
		ResidentBirthDate:    "1941-05-02",
		ResidentPersonalCode: "020541-11111",
		ResidentGender:       "female",
		ResidentStreet:       "Liepu iela 4",
		ResidentCity:         "Rīga",
		ResidentPostalCode:   "LV-1002",
		StayStartDate:        "2026-09-01",
		SignerScenario:       domain.SignerResident,
	})
	if err != nil {
		t.Fatalf("save survey failed: %v", err)
	}
	return lead
}

func TestCreateProspect(t *testing.T) {
	f := newFixture(t)

	lead := f.createProspect(t)

	if lead.Status != domain.StatusProspect {
		t.Fatalf("expected status prospect, got %s", lead.Status)
	}
	if !domain.LeadIDPattern.MatchString(lead.ID) {
		t.Fatalf("id %q does not match the lead id format", lead.ID)
	}
	if lead.FirstName != "Anna" || lead.Email != "anna@example.com" {
		t.Fatalf("inputs not preserved: %+v", lead.Lead)
	}
	if lead.Phone != "+37120000000" {
		t.Fatalf("phone not normalized to E.164: %q", lead.Phone)
	}
	if lead.CreatedDate != "2026-03-14" || lead.CreatedTime != "09:30" {
		t.Fatalf("created stamp wrong: %s %s", lead.CreatedDate, lead.CreatedTime)
	}
	if lead.Source != "intake_form" {
		t.Fatalf("expected default source intake_form, got %q", lead.Source)
	}

	stored, err := f.repo.FindByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("prospect not persisted: %v", err)
	}
	if stored.ID != lead.ID {
		t.Fatalf("stored %+v", stored)
	}
}

func TestCreateProspect_InvalidContact(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateProspect(context.Background(), transport.CreateLeadRequest{
		FirstName: "Anna",
		Email:     "not-an-email",
		Phone:     "123",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	details, ok := err.(*apperr.Error).Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field error details, got %T", err.(*apperr.Error).Details)
	}
	for _, field := range []string{"lastName", "email", "phone"} {
		if details[field] == "" {
			t.Errorf("expected an error for %s, details: %v", field, details)
		}
	}
	if len(f.repo.All(context.Background())) != 0 {
		t.Fatal("invalid prospect must not be persisted")
	}
}

func TestUpgradeToLead_ComputesPrice(t *testing.T) {
	f := newFixture(t)
	prospect := f.createProspect(t)

	lead := f.toConsultation(t, prospect.ID)

	if lead.Status != domain.StatusConsultation {
		t.Fatalf("expected status consultation, got %s", lead.Status)
	}
	if lead.Consultation == nil || lead.Consultation.Price == nil {
		t.Fatalf("price not computed: %+v", lead.Consultation)
	}
	if *lead.Consultation.Price != 82 {
		t.Fatalf("expected price 82 for long/single/3, got %v", *lead.Consultation.Price)
	}
	if lead.Consultation.Facility != "Šampēteris" {
		t.Fatalf("facility default not applied: %q", lead.Consultation.Facility)
	}
}

func TestUpgradeToLead_UnpricedCombinationBlocks(t *testing.T) {
	f := newFixture(t)
	prospect := f.createProspect(t)

	_, err := f.svc.UpgradeToLead(context.Background(), prospect.ID, transport.ConsultationRequest{
		CareLevel: "1",
		Duration:  domain.DurationShort,
		RoomType:  domain.RoomTriple, // not offered
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	stored, _ := f.repo.FindByID(context.Background(), prospect.ID)
	if stored.Status != domain.StatusProspect {
		t.Fatalf("failed upgrade must not change status, got %s", stored.Status)
	}
}

func TestUpgradeToLead_ReeditRecomputesPrice(t *testing.T) {
	f := newFixture(t)
	prospect := f.createProspect(t)
	f.toConsultation(t, prospect.ID)

	lead, err := f.svc.UpgradeToLead(context.Background(), prospect.ID, transport.ConsultationRequest{
		CareLevel: "2",
		Duration:  domain.DurationLong,
		RoomType:  domain.RoomDouble,
	})
	if err != nil {
		t.Fatalf("re-edit failed: %v", err)
	}
	if lead.Status != domain.StatusConsultation {
		t.Fatalf("re-edit must keep status, got %s", lead.Status)
	}
	if *lead.Consultation.Price != 68 {
		t.Fatalf("expected recomputed price 68 for long/double/2, got %v", *lead.Consultation.Price)
	}
}

func TestCreateAgreement_GateAndResidentRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t)
	f.toConsultation(t, prospect.ID)
	f.toSurveyFilled(t, prospect.ID)

	lead, err := f.svc.CreateAgreement(ctx, prospect.ID, transport.CreateAgreementRequest{})
	if err != nil {
		t.Fatalf("create agreement failed: %v", err)
	}
	if lead.Status != domain.StatusAgreement {
		t.Fatalf("expected status agreement, got %s", lead.Status)
	}
	if !domain.AgreementNumberPattern.MatchString(lead.AgreementNumber) {
		t.Fatalf("agreement number %q does not match the format", lead.AgreementNumber)
	}

	resident, ok := f.residents.FindByID(ctx, prospect.ID)
	if !ok {
		t.Fatal("resident record not created")
	}
	if resident.Name != "Marta Liepa" || resident.AgreementNumber != lead.AgreementNumber {
		t.Fatalf("resident record wrong: %+v", resident)
	}
	if resident.CareLevel != "3" || resident.RoomType != domain.RoomSingle {
		t.Fatalf("consultation data not carried over: %+v", resident)
	}
}

func TestCreateAgreement_IncompleteDataBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t)
	f.toConsultation(t, prospect.ID)
	// Survey with missing resident fields.
	if _, err := f.svc.SaveSurvey(ctx, prospect.ID, transport.SurveyRequest{ResidentName: "Marta"}); err != nil {
		t.Fatalf("save survey failed: %v", err)
	}

	_, err := f.svc.CreateAgreement(ctx, prospect.ID, transport.CreateAgreementRequest{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	// The override skips the completeness gate, not the transition check.
	lead, err := f.svc.CreateAgreement(ctx, prospect.ID, transport.CreateAgreementRequest{Override: true})
	if err != nil {
		t.Fatalf("override failed: %v", err)
	}
	if lead.Status != domain.StatusAgreement {
		t.Fatalf("expected status agreement after override, got %s", lead.Status)
	}
}

func TestCreateAgreement_InvalidFromConsultation(t *testing.T) {
	f := newFixture(t)
	prospect := f.createProspect(t)
	f.toConsultation(t, prospect.ID)

	_, err := f.svc.CreateAgreement(context.Background(), prospect.ID, transport.CreateAgreementRequest{Override: true})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected a conflict error, got %v", err)
	}
}

func TestQueueFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		prospect := f.createProspect(t)
		f.toConsultation(t, prospect.ID)
		queued, err := f.svc.AddToQueue(ctx, prospect.ID)
		if err != nil {
			t.Fatalf("queue failed: %v", err)
		}
		if queued.Status != domain.StatusQueue {
			t.Fatalf("expected status queue, got %s", queued.Status)
		}
		ids = append(ids, prospect.ID)
	}

	// All three queued at the same clock instant; stored order breaks the tie
	// stably, so positions are 1..n in insertion order.
	for i, id := range ids {
		pos, err := f.svc.QueuePosition(ctx, id)
		if err != nil {
			t.Fatalf("queue position failed: %v", err)
		}
		if pos.QueuePosition != i+1 {
			t.Errorf("lead %s: position %d, want %d", id, pos.QueuePosition, i+1)
		}
	}

	// Offer to the head of the queue.
	offered, err := f.svc.MarkQueueOfferSent(ctx, ids[0])
	if err != nil {
		t.Fatalf("mark offer sent failed: %v", err)
	}
	if !offered.QueueOfferSent || offered.QueueOfferSentDate != "2026-03-14" {
		t.Fatalf("offer not recorded: %+v", offered.Lead)
	}

	// Cancelling the head promotes the others.
	if _, err := f.svc.Cancel(ctx, ids[0], transport.CancelRequest{Reason: domain.CancelReasonChangedMind}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	pos, _ := f.svc.QueuePosition(ctx, ids[1])
	if pos.QueuePosition != 1 {
		t.Fatalf("expected promotion to 1, got %d", pos.QueuePosition)
	}
	cancelledPos, _ := f.svc.QueuePosition(ctx, ids[0])
	if cancelledPos.QueuePosition != 0 {
		t.Fatalf("cancelled lead should rank 0, got %d", cancelledPos.QueuePosition)
	}
}

func TestCancel_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t)

	if _, err := f.svc.Cancel(ctx, prospect.ID, transport.CancelRequest{Reason: "ran_away"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error for an unknown reason, got %v", err)
	}
	if _, err := f.svc.Cancel(ctx, prospect.ID, transport.CancelRequest{Reason: domain.CancelReasonOther}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error for other without notes, got %v", err)
	}

	lead, err := f.svc.Cancel(ctx, prospect.ID, transport.CancelRequest{
		Reason: domain.CancelReasonOther,
		Notes:  "pārcēlās pie radiem",
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if lead.Status != domain.StatusCancelled || lead.CancelNotes == "" {
		t.Fatalf("cancel not recorded: %+v", lead.Lead)
	}
}

func TestList_StatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.createProspect(t)
	b := f.createProspect(t)
	f.toConsultation(t, b.ID)

	all := f.svc.List(ctx, transport.ListLeadsRequest{})
	if all.Total != 2 {
		t.Fatalf("expected 2 leads, got %d", all.Total)
	}

	prospects := f.svc.List(ctx, transport.ListLeadsRequest{Status: string(domain.StatusProspect)})
	if prospects.Total != 1 || prospects.Items[0].ID != a.ID {
		t.Fatalf("filter wrong: %+v", prospects)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), "L-2026-404")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEmailContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t)

	// Before the consultation there is nothing to generate.
	if _, err := f.svc.EmailContent(ctx, prospect.ID, EmailScenarioConsultation); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error without consultation, got %v", err)
	}

	f.toConsultation(t, prospect.ID)
	msg, err := f.svc.EmailContent(ctx, prospect.ID, EmailScenarioConsultation)
	if err != nil {
		t.Fatalf("email content failed: %v", err)
	}
	if msg.Subject == "" || msg.Body == "" {
		t.Fatalf("empty message: %+v", msg)
	}

	if _, err := f.svc.EmailContent(ctx, prospect.ID, "newsletter"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected a bad request for an unknown scenario, got %v", err)
	}
}

func TestCheckAgreementData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prospect := f.createProspect(t)

	check, err := f.svc.CheckAgreementData(ctx, prospect.ID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if check.IsValid {
		t.Fatal("a fresh prospect cannot have complete agreement data")
	}

	f.toConsultation(t, prospect.ID)
	f.toSurveyFilled(t, prospect.ID)
	check, err = f.svc.CheckAgreementData(ctx, prospect.ID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !check.IsValid {
		t.Fatalf("expected complete data, missing: %+v", check.Missing)
	}
}

func TestUniqueLeadIDs(t *testing.T) {
	f := newFixture(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		lead := f.createProspect(t)
		if seen[lead.ID] {
			t.Fatalf("duplicate lead id allocated: %s", lead.ID)
		}
		seen[lead.ID] = true
	}
}
