// Package domain provides core business rules for the leads bounded context.
// Everything here is pure: functions take a Lead (plus auxiliary data and a
// clock value) and return a new Lead. Persistence and orchestration live in
// the service layer.
package domain

// Status is the single lifecycle state of a lead.
type Status string

const (
	StatusProspect     Status = "prospect"
	StatusConsultation Status = "consultation"
	StatusSurveyFilled Status = "survey_filled"
	StatusAgreement    Status = "agreement"
	StatusQueue        Status = "queue"
	StatusCancelled    Status = "cancelled"
)

// Duration of the planned stay.
const (
	DurationLong  = "long"
	DurationShort = "short"
)

// Room types.
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomTriple = "triple"
)

// Fill scenarios for survey completion.
const (
	FillInPerson = "in-person"
	FillRemote   = "remote"
)

// Signer scenarios for the agreement.
const (
	SignerResident = "resident"
	SignerRelative = "relative"
)

// Cancel reasons. CancelReasonOther requires free-text notes.
const (
	CancelReasonChangedMind        = "changed_mind"
	CancelReasonChoseOtherFacility = "chose_other_facility"
	CancelReasonHealthImproved     = "health_improved"
	CancelReasonDeceased           = "deceased"
	CancelReasonNoContact          = "no_contact"
	CancelReasonOther              = "other"
)

// CancelReasons enumerates every accepted cancellation reason.
var CancelReasons = []string{
	CancelReasonChangedMind,
	CancelReasonChoseOtherFacility,
	CancelReasonHealthImproved,
	CancelReasonDeceased,
	CancelReasonNoContact,
	CancelReasonOther,
}

// Consultation holds the facility/care-level/room/price decision recorded
// after the first conversation with a prospect. Price is derived from the
// pricing table and recomputed on every consultation mutation; there is no
// independent set-price entry point.
type Consultation struct {
	Facility     string   `json:"facility,omitempty"`
	CareLevel    string   `json:"careLevel,omitempty"` // "1".."4"
	Duration     string   `json:"duration,omitempty"`
	RoomType     string   `json:"roomType,omitempty"`
	HasDementia  bool     `json:"hasDementia"`
	FillScenario string   `json:"fillScenario,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

// Survey holds the resident's personal/legal data collected for agreement
// drafting, plus caregiver/signer fields when a relative signs.
type Survey struct {
	ResidentName         string `json:"residentName,omitempty"`
	ResidentPersonalCode string `json:"residentPersonalCode,omitempty"`
	ResidentBirthDate    string `json:"residentBirthDate,omitempty"`
	ResidentPhone        string `json:"residentPhone,omitempty"`
	ResidentGender       string `json:"residentGender,omitempty"`
	ResidentStreet       string `json:"residentStreet,omitempty"`
	ResidentCity         string `json:"residentCity,omitempty"`
	ResidentPostalCode   string `json:"residentPostalCode,omitempty"`
	DisabilityInfo       string `json:"disabilityInfo,omitempty"`
	StayStartDate        string `json:"stayStartDate,omitempty"`
	StayEndDate          string `json:"stayEndDate,omitempty"`

	SignerScenario string `json:"signerScenario,omitempty"`

	CaregiverName         string `json:"caregiverName,omitempty"`
	CaregiverRelationship string `json:"caregiverRelationship,omitempty"`
	CaregiverPhone        string `json:"caregiverPhone,omitempty"`
	CaregiverEmail        string `json:"caregiverEmail,omitempty"`
	CaregiverPersonalCode string `json:"caregiverPersonalCode,omitempty"`
	CaregiverStreet       string `json:"caregiverStreet,omitempty"`
	CaregiverCity         string `json:"caregiverCity,omitempty"`
	CaregiverPostalCode   string `json:"caregiverPostalCode,omitempty"`

	IsComplete bool `json:"isComplete"`
}

// Lead is the central intake record. Field names are the wire contract shared
// with the views layer and must not change. Dates are ISO YYYY-MM-DD strings
// and times are HH:MM, which keeps them lexicographically ordered.
type Lead struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Comment   string `json:"comment,omitempty"`

	Consultation *Consultation `json:"consultation,omitempty"`
	Survey       *Survey       `json:"survey,omitempty"`

	QueuedDate         string `json:"queuedDate,omitempty"`
	QueuedTime         string `json:"queuedTime,omitempty"`
	QueueOfferSent     bool   `json:"queueOfferSent"`
	QueueOfferSentDate string `json:"queueOfferSentDate,omitempty"`
	QueueOfferSentTime string `json:"queueOfferSentTime,omitempty"`

	AgreementNumber string `json:"agreementNumber,omitempty"`

	CancelledDate string `json:"cancelledDate,omitempty"`
	CancelReason  string `json:"cancelReason,omitempty"`
	CancelNotes   string `json:"cancelNotes,omitempty"`

	CreatedDate string `json:"createdDate"`
	CreatedTime string `json:"createdTime"`
	Source      string `json:"source,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
}

// transitions maps each status to the statuses reachable from it. Cancelled
// and agreement are terminal.
var transitions = map[Status][]Status{
	StatusProspect:     {StatusConsultation, StatusCancelled},
	StatusConsultation: {StatusSurveyFilled, StatusQueue, StatusCancelled},
	StatusSurveyFilled: {StatusAgreement, StatusQueue, StatusCancelled},
	StatusQueue:        {StatusCancelled},
	StatusAgreement:    {},
	StatusCancelled:    {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are modeled for the status.
func IsTerminal(status Status) bool {
	return len(transitions[status]) == 0
}

// ValidCancelReason reports whether the reason is one of the enumerated
// cancellation reasons.
func ValidCancelReason(reason string) bool {
	for _, r := range CancelReasons {
		if r == reason {
			return true
		}
	}
	return false
}
