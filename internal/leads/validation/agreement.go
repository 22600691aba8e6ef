package validation

import (
	"strings"

	"care_portal_backend/internal/leads/domain"
)

// MissingField carries the machine field name and a human label for display.
type MissingField struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// MissingBuckets groups missing fields by the part of the record they belong to.
type MissingBuckets struct {
	Consultation []MissingField `json:"consultation"`
	Resident     []MissingField `json:"resident"`
	Caregiver    []MissingField `json:"caregiver"`
}

// AgreementCheck is the result of the agreement-data completeness check.
// IsValid is true iff all three buckets are empty.
type AgreementCheck struct {
	IsValid bool           `json:"isValid"`
	Missing MissingBuckets `json:"missingFields"`
}

// ValidateAgreementData checks, independently, the three buckets of fields an
// agreement needs: the consultation decision, the resident's personal/legal
// data, and (only when a relative signs) the caregiver data. It performs no
// mutation; the agreement-creation gate uses the result to block, warn or
// proceed.
func ValidateAgreementData(lead domain.Lead) AgreementCheck {
	var check AgreementCheck

	c := lead.Consultation
	if c == nil {
		c = &domain.Consultation{}
	}
	check.Missing.Consultation = missingOf([]requiredField{
		{"careLevel", "Aprūpes līmenis", c.CareLevel},
		{"duration", "Uzturēšanās ilgums", c.Duration},
		{"roomType", "Istabas tips", c.RoomType},
		{"price", "Cena", priceValue(c)},
	})

	s := lead.Survey
	if s == nil {
		s = &domain.Survey{}
	}
	check.Missing.Resident = missingOf([]requiredField{
		{"residentName", "Klienta vārds, uzvārds", s.ResidentName},
		{"residentPhone", "Klienta tālrunis", s.ResidentPhone},
		{"residentBirthDate", "Dzimšanas datums", s.ResidentBirthDate},
		{"residentPersonalCode", "Personas kods", s.ResidentPersonalCode},
		{"residentGender", "Dzimums", s.ResidentGender},
		{"residentStreet", "Iela", s.ResidentStreet},
		{"residentCity", "Pilsēta", s.ResidentCity},
		{"residentPostalCode", "Pasta indekss", s.ResidentPostalCode},
		{"stayStartDate", "Uzturēšanās sākuma datums", s.StayStartDate},
	})

	// Caregiver data is only required when a relative signs the agreement;
	// otherwise the bucket is vacuously valid.
	check.Missing.Caregiver = []MissingField{}
	if s.SignerScenario == domain.SignerRelative {
		check.Missing.Caregiver = missingOf([]requiredField{
			{"caregiverName", "Aprūpētāja vārds, uzvārds", s.CaregiverName},
			{"caregiverRelationship", "Radniecība", s.CaregiverRelationship},
			{"caregiverPhone", "Aprūpētāja tālrunis", s.CaregiverPhone},
			{"caregiverEmail", "Aprūpētāja e-pasts", s.CaregiverEmail},
			{"caregiverPersonalCode", "Aprūpētāja personas kods", s.CaregiverPersonalCode},
			{"caregiverStreet", "Aprūpētāja iela", s.CaregiverStreet},
			{"caregiverCity", "Aprūpētāja pilsēta", s.CaregiverCity},
			{"caregiverPostalCode", "Aprūpētāja pasta indekss", s.CaregiverPostalCode},
		})
	}

	check.IsValid = len(check.Missing.Consultation) == 0 &&
		len(check.Missing.Resident) == 0 &&
		len(check.Missing.Caregiver) == 0
	return check
}

type requiredField struct {
	field string
	label string
	value string
}

func missingOf(fields []requiredField) []MissingField {
	missing := []MissingField{}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, MissingField{Field: f.field, Label: f.label})
		}
	}
	return missing
}

func priceValue(c *domain.Consultation) string {
	if c.Price == nil {
		return ""
	}
	return "set"
}
