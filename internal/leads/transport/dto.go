package transport

import (
	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/internal/leads/validation"
)

// Request DTOs. Binding tags catch shape errors early; the intake business
// rules (contact validator, agreement gate) live in the validation package
// and produce the field→message results the clients render.

type CreateLeadRequest struct {
	FirstName  string `json:"firstName" validate:"max=100"`
	LastName   string `json:"lastName" validate:"max=100"`
	Email      string `json:"email" validate:"max=200"`
	Phone      string `json:"phone" validate:"max=30"`
	Comment    string `json:"comment,omitempty" validate:"max=2000"`
	Source     string `json:"source,omitempty" validate:"max=100"`
	AssignedTo string `json:"assignedTo,omitempty" validate:"max=100"`
}

type ConsultationRequest struct {
	Facility     string `json:"facility,omitempty" validate:"max=100"`
	CareLevel    string `json:"careLevel" validate:"required,oneof=1 2 3 4"`
	Duration     string `json:"duration" validate:"required,oneof=long short"`
	RoomType     string `json:"roomType" validate:"required,oneof=single double triple"`
	HasDementia  bool   `json:"hasDementia"`
	FillScenario string `json:"fillScenario,omitempty" validate:"omitempty,oneof=in-person remote"`
	Notes        string `json:"notes,omitempty" validate:"max=2000"`
}

type SurveyRequest struct {
	ResidentName         string `json:"residentName,omitempty" validate:"max=200"`
	ResidentPersonalCode string `json:"residentPersonalCode,omitempty" validate:"max=20"`
	ResidentBirthDate    string `json:"residentBirthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ResidentPhone        string `json:"residentPhone,omitempty" validate:"max=30"`
	ResidentGender       string `json:"residentGender,omitempty" validate:"max=20"`
	ResidentStreet       string `json:"residentStreet,omitempty" validate:"max=200"`
	ResidentCity         string `json:"residentCity,omitempty" validate:"max=100"`
	ResidentPostalCode   string `json:"residentPostalCode,omitempty" validate:"max=20"`
	DisabilityInfo       string `json:"disabilityInfo,omitempty" validate:"max=2000"`
	StayStartDate        string `json:"stayStartDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StayEndDate          string `json:"stayEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`

	SignerScenario string `json:"signerScenario,omitempty" validate:"omitempty,oneof=resident relative"`

	CaregiverName         string `json:"caregiverName,omitempty" validate:"max=200"`
	CaregiverRelationship string `json:"caregiverRelationship,omitempty" validate:"max=100"`
	CaregiverPhone        string `json:"caregiverPhone,omitempty" validate:"max=30"`
	CaregiverEmail        string `json:"caregiverEmail,omitempty" validate:"omitempty,email"`
	CaregiverPersonalCode string `json:"caregiverPersonalCode,omitempty" validate:"max=20"`
	CaregiverStreet       string `json:"caregiverStreet,omitempty" validate:"max=200"`
	CaregiverCity         string `json:"caregiverCity,omitempty" validate:"max=100"`
	CaregiverPostalCode   string `json:"caregiverPostalCode,omitempty" validate:"max=20"`
}

type CreateAgreementRequest struct {
	// Override lets an admin create the agreement despite incomplete data.
	Override bool `json:"override"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"required,max=50"`
	Notes  string `json:"notes,omitempty" validate:"max=2000"`
}

type ListLeadsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=prospect consultation survey_filled agreement queue cancelled"`
}

// Response DTOs. The Lead record itself is the wire contract, so responses
// embed it directly and only add derived data.

type LeadResponse struct {
	domain.Lead
	QueuePosition int `json:"queuePosition,omitempty"`
	DaysInQueue   int `json:"daysInQueue,omitempty"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

type QueuePositionResponse struct {
	LeadID        string `json:"leadId"`
	QueuePosition int    `json:"queuePosition"`
	DaysInQueue   int    `json:"daysInQueue"`
}

type AgreementCheckResponse = validation.AgreementCheck

type RateResponse struct {
	Facility  string  `json:"facility"`
	Currency  string  `json:"currency"`
	Duration  string  `json:"duration"`
	RoomType  string  `json:"roomType"`
	CareLevel string  `json:"careLevel"`
	DailyRate float64 `json:"dailyRate"`
}
