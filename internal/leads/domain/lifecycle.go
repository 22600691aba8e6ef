package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrPriceNotComputed    = errors.New("consultation price is not computed")
	ErrInvalidCancelReason = errors.New("unknown cancellation reason")
	ErrCancelNotesRequired = errors.New("cancellation notes are required for reason \"other\"")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ProspectInput is the contact data captured by the intake form. It is
// expected to have passed the contact validator before a prospect is created.
type ProspectInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Comment    string
	Source     string
	AssignedTo string
}

// NewProspect creates a lead in the prospect status. The caller supplies the
// generated id; see NewLeadID.
func NewProspect(in ProspectInput, id string, now time.Time) Lead {
	return Lead{
		ID:          id,
		Status:      StatusProspect,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		Comment:     in.Comment,
		CreatedDate: now.Format(dateLayout),
		CreatedTime: now.Format(timeLayout),
		Source:      in.Source,
		AssignedTo:  in.AssignedTo,
	}
}

// UpgradeToLead merges the consultation decision in and moves the prospect to
// the consultation status. The consultation must carry a computed price: a
// nil price means the pricing inputs are incomplete and the upgrade cannot
// proceed.
func UpgradeToLead(lead Lead, c Consultation) (Lead, error) {
	if !CanTransition(lead.Status, StatusConsultation) {
		return Lead{}, ErrInvalidTransition
	}
	if c.Price == nil {
		return Lead{}, ErrPriceNotComputed
	}
	lead.Status = StatusConsultation
	lead.Consultation = &c
	return lead, nil
}

// UpdateConsultation replaces the consultation data of a lead that already
// holds one, without changing status. Used when pricing inputs are edited;
// the caller recomputes the price first.
func UpdateConsultation(lead Lead, c Consultation) (Lead, error) {
	if lead.Consultation == nil {
		return Lead{}, ErrInvalidTransition
	}
	if IsTerminal(lead.Status) {
		return Lead{}, ErrInvalidTransition
	}
	if c.Price == nil {
		return Lead{}, ErrPriceNotComputed
	}
	lead.Consultation = &c
	return lead, nil
}

// SaveSurvey merges the survey in and marks it complete. Allowed from the
// consultation status and, for re-saves, from survey_filled.
func SaveSurvey(lead Lead, s Survey) (Lead, error) {
	if lead.Status != StatusSurveyFilled && !CanTransition(lead.Status, StatusSurveyFilled) {
		return Lead{}, ErrInvalidTransition
	}
	s.IsComplete = true
	lead.Status = StatusSurveyFilled
	lead.Survey = &s
	return lead, nil
}

// CreateAgreement assigns the agreement number and moves the lead to the
// terminal agreement status. The completeness gate (agreement validator, or
// an explicit admin override) is the caller's responsibility.
func CreateAgreement(lead Lead, agreementNumber string) (Lead, error) {
	if !CanTransition(lead.Status, StatusAgreement) {
		return Lead{}, ErrInvalidTransition
	}
	lead.Status = StatusAgreement
	lead.AgreementNumber = agreementNumber
	return lead, nil
}

// AddToQueue places the lead on the waiting list, stamping the queue entry
// time used for FIFO ordering.
func AddToQueue(lead Lead, now time.Time) (Lead, error) {
	if !CanTransition(lead.Status, StatusQueue) {
		return Lead{}, ErrInvalidTransition
	}
	lead.Status = StatusQueue
	lead.QueuedDate = now.Format(dateLayout)
	lead.QueuedTime = now.Format(timeLayout)
	lead.QueueOfferSent = false
	lead.QueueOfferSentDate = ""
	lead.QueueOfferSentTime = ""
	return lead, nil
}

// MarkQueueOfferSent records that a place offer went out to a queued lead.
// The status stays queue.
func MarkQueueOfferSent(lead Lead, now time.Time) (Lead, error) {
	if lead.Status != StatusQueue {
		return Lead{}, ErrInvalidTransition
	}
	lead.QueueOfferSent = true
	lead.QueueOfferSentDate = now.Format(dateLayout)
	lead.QueueOfferSentTime = now.Format(timeLayout)
	return lead, nil
}

// Cancel moves any non-terminal lead to the terminal cancelled status.
// The reason must be one of CancelReasons; "other" requires notes.
func Cancel(lead Lead, reason, notes string, now time.Time) (Lead, error) {
	if IsTerminal(lead.Status) {
		return Lead{}, ErrInvalidTransition
	}
	if !ValidCancelReason(reason) {
		return Lead{}, ErrInvalidCancelReason
	}
	if reason == CancelReasonOther && notes == "" {
		return Lead{}, ErrCancelNotesRequired
	}
	lead.Status = StatusCancelled
	lead.CancelledDate = now.Format(dateLayout)
	lead.CancelReason = reason
	lead.CancelNotes = notes
	return lead, nil
}
