package validation

import (
	"testing"

	"care_portal_backend/internal/leads/domain"
)

func price(v float64) *float64 { return &v }

func completeConsultation() *domain.Consultation {
	return &domain.Consultation{
		Facility:  "Šampēteris",
		CareLevel: "3",
		Duration:  domain.DurationLong,
		RoomType:  domain.RoomSingle,
		Price:     price(82),
	}
}

func completeSurvey(signer string) *domain.Survey {
	s := &domain.Survey{
		ResidentName:         "Marta Liepa",
		ResidentPhone:        "+37120000001",
		ResidentBirthDate:    "1941-05-02",
		ResidentPersonalCode: "020541-11111",
		ResidentGender:       "female",
		ResidentStreet:       "Liepu iela 4",
		ResidentCity:         "Rīga",
		ResidentPostalCode:   "LV-1002",
		StayStartDate:        "2026-09-01",
		SignerScenario:       signer,
		IsComplete:           true,
	}
	if signer == domain.SignerRelative {
		s.CaregiverName = "Jānis Liepa"
		s.CaregiverRelationship = "dēls"
		s.CaregiverPhone = "+37120000002"
		s.CaregiverEmail = "janis@example.com"
		s.CaregiverPersonalCode = "121165-22222"
		s.CaregiverStreet = "Ozolu iela 9"
		s.CaregiverCity = "Rīga"
		s.CaregiverPostalCode = "LV-1010"
	}
	return s
}

func TestValidateAgreementData_CompleteResidentSigner(t *testing.T) {
	lead := domain.Lead{
		Status:       domain.StatusSurveyFilled,
		Consultation: completeConsultation(),
		Survey:       completeSurvey(domain.SignerResident),
	}

	check := ValidateAgreementData(lead)
	if !check.IsValid {
		t.Fatalf("expected valid, missing: %+v", check.Missing)
	}
	if len(check.Missing.Caregiver) != 0 {
		t.Fatalf("resident signer must not require caregiver fields: %+v", check.Missing.Caregiver)
	}
}

func TestValidateAgreementData_CompleteRelativeSigner(t *testing.T) {
	lead := domain.Lead{
		Status:       domain.StatusSurveyFilled,
		Consultation: completeConsultation(),
		Survey:       completeSurvey(domain.SignerRelative),
	}

	if check := ValidateAgreementData(lead); !check.IsValid {
		t.Fatalf("expected valid, missing: %+v", check.Missing)
	}
}

// A complete survey never compensates for a missing consultation.
func TestValidateAgreementData_ConsultationBucketBlocksIndependently(t *testing.T) {
	lead := domain.Lead{
		Status: domain.StatusSurveyFilled,
		Survey: completeSurvey(domain.SignerResident),
	}

	check := ValidateAgreementData(lead)
	if check.IsValid {
		t.Fatal("expected invalid without a consultation")
	}
	if len(check.Missing.Consultation) != 4 {
		t.Fatalf("expected all 4 consultation fields missing, got %+v", check.Missing.Consultation)
	}
	if len(check.Missing.Resident) != 0 {
		t.Fatalf("resident bucket should be clean: %+v", check.Missing.Resident)
	}
}

func TestValidateAgreementData_NilPriceIsMissing(t *testing.T) {
	c := completeConsultation()
	c.Price = nil
	lead := domain.Lead{
		Consultation: c,
		Survey:       completeSurvey(domain.SignerResident),
	}

	check := ValidateAgreementData(lead)
	if check.IsValid {
		t.Fatal("expected invalid with nil price")
	}
	if len(check.Missing.Consultation) != 1 || check.Missing.Consultation[0].Field != "price" {
		t.Fatalf("expected only price missing, got %+v", check.Missing.Consultation)
	}
}

func TestValidateAgreementData_RelativeSignerRequiresCaregiver(t *testing.T) {
	s := completeSurvey(domain.SignerRelative)
	s.CaregiverEmail = ""
	s.CaregiverPostalCode = ""
	lead := domain.Lead{
		Consultation: completeConsultation(),
		Survey:       s,
	}

	check := ValidateAgreementData(lead)
	if check.IsValid {
		t.Fatal("expected invalid with missing caregiver fields")
	}
	if len(check.Missing.Caregiver) != 2 {
		t.Fatalf("expected 2 missing caregiver fields, got %+v", check.Missing.Caregiver)
	}
	for _, f := range check.Missing.Caregiver {
		if f.Label == "" {
			t.Errorf("missing field %s has no label", f.Field)
		}
	}
}

func TestValidateAgreementData_EmptyLead(t *testing.T) {
	check := ValidateAgreementData(domain.Lead{})

	if check.IsValid {
		t.Fatal("expected an empty lead to be invalid")
	}
	if len(check.Missing.Consultation) == 0 || len(check.Missing.Resident) == 0 {
		t.Fatalf("expected consultation and resident buckets populated: %+v", check.Missing)
	}
	// No signer scenario means no caregiver requirements.
	if len(check.Missing.Caregiver) != 0 {
		t.Fatalf("caregiver bucket should be empty without a relative signer: %+v", check.Missing.Caregiver)
	}
	if check.Missing.Caregiver == nil {
		t.Fatal("caregiver bucket must be an empty slice, not nil")
	}
}
