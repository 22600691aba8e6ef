// Package service orchestrates the lead lifecycle: validation, pure domain
// transitions, persistence through the repository, and event publication.
package service

import (
	"context"
	"time"

	"care_portal_backend/internal/email"
	"care_portal_backend/internal/events"
	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/internal/leads/pricing"
	"care_portal_backend/internal/leads/repository"
	"care_portal_backend/internal/leads/transport"
	"care_portal_backend/internal/leads/validation"
	"care_portal_backend/internal/residents"
	"care_portal_backend/platform/apperr"
	"care_portal_backend/platform/logger"
	"care_portal_backend/platform/phone"
)

// The 3-digit id suffix gives 1000 ids per year bucket; a bounded retry
// keeps the historical format while ruling out silent collisions.
const maxIDAttempts = 25

// QueueOfferScheduler schedules the reminder that fires when a queued lead
// has waited long enough for an offer. Nil-able: scheduling is optional.
type QueueOfferScheduler interface {
	ScheduleQueueOfferReminder(ctx context.Context, leadID string, runAt time.Time) error
}

type Service struct {
	repo      *repository.Repository
	residents *residents.Repository
	rates     *pricing.Table
	bus       events.Bus
	scheduler QueueOfferScheduler
	log       *logger.Logger

	facility      string
	reminderAfter time.Duration
	clock         func() time.Time
}

type Options struct {
	Facility      string
	ReminderAfter time.Duration
	Scheduler     QueueOfferScheduler
}

func New(repo *repository.Repository, res *residents.Repository, rates *pricing.Table, bus events.Bus, log *logger.Logger, opts Options) *Service {
	facility := opts.Facility
	if facility == "" {
		facility = rates.Facility
	}
	return &Service{
		repo:          repo,
		residents:     res,
		rates:         rates,
		bus:           bus,
		scheduler:     opts.Scheduler,
		log:           log,
		facility:      facility,
		reminderAfter: opts.ReminderAfter,
		clock:         time.Now,
	}
}

// CreateProspect validates the intake form and stores a new prospect.
func (s *Service) CreateProspect(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	errs := validation.ValidateContactForm(validation.ContactForm{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if !validation.IsValidForm(errs) {
		return transport.LeadResponse{}, apperr.Validation("invalid contact details").WithDetails(errs)
	}

	now := s.clock()
	id, err := s.uniqueLeadID(ctx, now.Year())
	if err != nil {
		return transport.LeadResponse{}, err
	}

	source := req.Source
	if source == "" {
		source = "intake_form"
	}

	lead := domain.NewProspect(domain.ProspectInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      phone.NormalizeE164(req.Phone),
		Comment:    req.Comment,
		Source:     source,
		AssignedTo: req.AssignedTo,
	}, id, now)

	s.repo.Upsert(ctx, lead)
	s.log.LeadEvent("created", lead.ID, string(lead.Status))
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Source:     lead.Source,
		AssignedTo: lead.AssignedTo,
	})

	return s.annotate(ctx, lead), nil
}

// GetByID returns one lead with its derived queue data.
func (s *Service) GetByID(ctx context.Context, id string) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}
	return s.annotate(ctx, lead), nil
}

// List returns all leads, optionally filtered by status.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) transport.LeadListResponse {
	var leads []domain.Lead
	if req.Status != "" {
		leads = s.repo.ListByStatus(ctx, domain.Status(req.Status))
	} else {
		leads = s.repo.All(ctx)
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = s.annotate(ctx, lead)
	}
	return transport.LeadListResponse{Items: items, Total: len(items)}
}

// UpgradeToLead records the consultation decision. The price is always
// recomputed from the rate table here; this is the single path that may set
// it, so a stored price can never drift from its inputs.
func (s *Service) UpgradeToLead(ctx context.Context, id string, req transport.ConsultationRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	facility := req.Facility
	if facility == "" {
		facility = s.facility
	}

	consultation := domain.Consultation{
		Facility:     facility,
		CareLevel:    req.CareLevel,
		Duration:     req.Duration,
		RoomType:     req.RoomType,
		HasDementia:  req.HasDementia,
		FillScenario: req.FillScenario,
		Notes:        req.Notes,
	}
	if rate, ok := s.rates.DailyRate(req.Duration, req.RoomType, req.CareLevel); ok {
		consultation.Price = &rate
	}

	var updated domain.Lead
	if lead.Consultation != nil {
		updated, err = domain.UpdateConsultation(lead, consultation)
	} else {
		updated, err = domain.UpgradeToLead(lead, consultation)
	}
	if err != nil {
		return transport.LeadResponse{}, s.mapDomainErr(err)
	}

	s.persistTransition(ctx, lead, updated, "consultation_saved")
	return s.annotate(ctx, updated), nil
}

// SaveSurvey merges the survey data in and advances to survey_filled.
func (s *Service) SaveSurvey(ctx context.Context, id string, req transport.SurveyRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	updated, err := domain.SaveSurvey(lead, domain.Survey{
		ResidentName:          req.ResidentName,
		ResidentPersonalCode:  req.ResidentPersonalCode,
		ResidentBirthDate:     req.ResidentBirthDate,
		ResidentPhone:         req.ResidentPhone,
		ResidentGender:        req.ResidentGender,
		ResidentStreet:        req.ResidentStreet,
		ResidentCity:          req.ResidentCity,
		ResidentPostalCode:    req.ResidentPostalCode,
		DisabilityInfo:        req.DisabilityInfo,
		StayStartDate:         req.StayStartDate,
		StayEndDate:           req.StayEndDate,
		SignerScenario:        req.SignerScenario,
		CaregiverName:         req.CaregiverName,
		CaregiverRelationship: req.CaregiverRelationship,
		CaregiverPhone:        req.CaregiverPhone,
		CaregiverEmail:        req.CaregiverEmail,
		CaregiverPersonalCode: req.CaregiverPersonalCode,
		CaregiverStreet:       req.CaregiverStreet,
		CaregiverCity:         req.CaregiverCity,
		CaregiverPostalCode:   req.CaregiverPostalCode,
	})
	if err != nil {
		return transport.LeadResponse{}, s.mapDomainErr(err)
	}

	s.persistTransition(ctx, lead, updated, "survey_saved")
	return s.annotate(ctx, updated), nil
}

// CheckAgreementData runs the completeness check without mutating anything.
func (s *Service) CheckAgreementData(ctx context.Context, id string) (validation.AgreementCheck, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return validation.AgreementCheck{}, apperr.NotFound("lead not found")
	}
	return validation.ValidateAgreementData(lead), nil
}

// CreateAgreement gates on the completeness check (unless overridden),
// assigns the agreement number and records the resident. The lead update and
// the resident write are separate keys: best-effort ordering, no rollback.
func (s *Service) CreateAgreement(ctx context.Context, id string, req transport.CreateAgreementRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	check := validation.ValidateAgreementData(lead)
	if !check.IsValid && !req.Override {
		return transport.LeadResponse{}, apperr.Validation("agreement data incomplete").WithDetails(check)
	}

	now := s.clock()
	number, err := s.uniqueAgreementNumber(ctx, now.Year())
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := domain.CreateAgreement(lead, number)
	if err != nil {
		return transport.LeadResponse{}, s.mapDomainErr(err)
	}

	s.persistTransition(ctx, lead, updated, "agreement_created")

	resident := residentFromLead(updated)
	s.residents.Upsert(ctx, resident)

	s.bus.Publish(ctx, events.AgreementCreated{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          updated.ID,
		AgreementNumber: number,
		ResidentName:    resident.Name,
		Overridden:      !check.IsValid,
	})

	return s.annotate(ctx, updated), nil
}

// AddToQueue places the lead on the waiting list and schedules the offer
// reminder when a scheduler is configured.
func (s *Service) AddToQueue(ctx context.Context, id string) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	now := s.clock()
	updated, err := domain.AddToQueue(lead, now)
	if err != nil {
		return transport.LeadResponse{}, s.mapDomainErr(err)
	}

	s.persistTransition(ctx, lead, updated, "queued")
	s.bus.Publish(ctx, events.LeadQueued{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     updated.ID,
		QueuedDate: updated.QueuedDate,
		QueuedTime: updated.QueuedTime,
		AssignedTo: updated.AssignedTo,
	})

	if s.scheduler != nil && s.reminderAfter > 0 {
		if err := s.scheduler.ScheduleQueueOfferReminder(ctx, updated.ID, now.Add(s.reminderAfter)); err != nil {
			s.log.Warn("failed to schedule queue offer reminder", "leadId", updated.ID, "error", err)
		}
	}

	return s.annotate(ctx, updated), nil
}

// MarkQueueOfferSent records that a place offer went out; the lead stays queued.
func (s *Service) MarkQueueOfferSent(ctx context.Context, id string) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	updated, err := domain.MarkQueueOfferSent(lead, s.clock())
	if err != nil {
		return transport.LeadResponse{}, s.mapDomainErr(err)
	}

	s.repo.Upsert(ctx, updated)
	s.log.LeadEvent("queue_offer_sent", updated.ID, string(updated.Status))
	s.bus.Publish(ctx, events.QueueOfferSent{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    updated.ID,
	})
	return s.annotate(ctx, updated), nil
}

// Cancel moves the lead to the terminal cancelled status.
func (s *Service) Cancel(ctx context.Context, id string, req transport.CancelRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}

	updated, err := domain.Cancel(lead, req.Reason, req.Notes, s.clock())
	if err != nil {
		return transport.LeadResponse{}, s.mapDomainErr(err)
	}

	s.persistTransition(ctx, lead, updated, "cancelled")
	s.bus.Publish(ctx, events.LeadCancelled{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    updated.ID,
		Reason:    req.Reason,
	})
	return s.annotate(ctx, updated), nil
}

// QueuePosition derives the lead's FIFO rank and waiting time.
func (s *Service) QueuePosition(ctx context.Context, id string) (transport.QueuePositionResponse, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return transport.QueuePositionResponse{}, apperr.NotFound("lead not found")
	}

	return transport.QueuePositionResponse{
		LeadID:        lead.ID,
		QueuePosition: domain.QueuePosition(s.repo.All(ctx), lead.ID),
		DaysInQueue:   domain.DaysInQueue(lead, s.clock()),
	}, nil
}

// Email generation scenarios.
const (
	EmailScenarioConsultation = "consultation"
	EmailScenarioQueueOffer   = "queue-offer"
)

// EmailContent generates the message text for the given scenario. Nothing is
// sent; the caller owns the transport.
func (s *Service) EmailContent(ctx context.Context, id, scenario string) (email.Message, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return email.Message{}, apperr.NotFound("lead not found")
	}

	switch scenario {
	case EmailScenarioConsultation:
		msg, err := email.ConsultationEmail(lead, s.facility)
		if err != nil {
			return email.Message{}, apperr.Wrap(apperr.KindValidation, err.Error(), err)
		}
		return msg, nil
	case EmailScenarioQueueOffer:
		position := domain.QueuePosition(s.repo.All(ctx), lead.ID)
		msg, err := email.QueueOfferEmail(lead, position, s.facility)
		if err != nil {
			return email.Message{}, apperr.Wrap(apperr.KindValidation, err.Error(), err)
		}
		return msg, nil
	default:
		return email.Message{}, apperr.BadRequest("unknown email scenario")
	}
}

// persistTransition stores the updated lead and publishes the status-change
// event when the status actually moved.
func (s *Service) persistTransition(ctx context.Context, old, updated domain.Lead, event string) {
	s.repo.Upsert(ctx, updated)
	s.log.LeadEvent(event, updated.ID, string(updated.Status))
	if old.Status != updated.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    updated.ID,
			OldStatus: string(old.Status),
			NewStatus: string(updated.Status),
		})
	}
}

func (s *Service) annotate(ctx context.Context, lead domain.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{Lead: lead}
	if lead.Status == domain.StatusQueue {
		resp.QueuePosition = domain.QueuePosition(s.repo.All(ctx), lead.ID)
		resp.DaysInQueue = domain.DaysInQueue(lead, s.clock())
	}
	return resp
}

func (s *Service) uniqueLeadID(ctx context.Context, year int) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := domain.NewLeadID(year)
		if !s.repo.Exists(ctx, id) {
			return id, nil
		}
	}
	return "", apperr.Internal("could not allocate a unique lead id")
}

func (s *Service) uniqueAgreementNumber(ctx context.Context, year int) (string, error) {
	taken := make(map[string]bool)
	for _, lead := range s.repo.All(ctx) {
		if lead.AgreementNumber != "" {
			taken[lead.AgreementNumber] = true
		}
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		number := domain.NewAgreementNumber(year)
		if !taken[number] {
			return number, nil
		}
	}
	return "", apperr.Internal("could not allocate a unique agreement number")
}

func (s *Service) mapDomainErr(err error) error {
	switch err {
	case domain.ErrInvalidTransition:
		return apperr.Wrap(apperr.KindConflict, "invalid status transition", err)
	case domain.ErrPriceNotComputed:
		return apperr.Wrap(apperr.KindValidation, "no daily rate for this duration/room/care level combination", err)
	case domain.ErrInvalidCancelReason:
		return apperr.Wrap(apperr.KindValidation, "unknown cancellation reason", err)
	case domain.ErrCancelNotesRequired:
		return apperr.Wrap(apperr.KindValidation, "cancellation notes are required for reason \"other\"", err)
	default:
		return apperr.Wrap(apperr.KindInternal, "lead update failed", err)
	}
}

func residentFromLead(lead domain.Lead) residents.Resident {
	resident := residents.Resident{
		ID:              lead.ID,
		Name:            lead.FirstName + " " + lead.LastName,
		AgreementNumber: lead.AgreementNumber,
	}
	if s := lead.Survey; s != nil {
		if s.ResidentName != "" {
			resident.Name = s.ResidentName
		}
		resident.PersonalCode = s.ResidentPersonalCode
		resident.BirthDate = s.ResidentBirthDate
		resident.AdmissionDate = s.StayStartDate
	}
	if c := lead.Consultation; c != nil {
		resident.CareLevel = c.CareLevel
		resident.RoomType = c.RoomType
		resident.HasDementia = c.HasDementia
	}
	return resident
}
