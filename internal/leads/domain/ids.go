package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

// Lead and agreement identifiers keep the historical L-<year>-<3 digits> /
// A-<year>-<3 digits> format. The 3-digit random suffix can collide within a
// year bucket; the service layer checks new ids against the stored collection
// and re-rolls, which the original format-only generation did not do.

var (
	LeadIDPattern          = regexp.MustCompile(`^L-\d{4}-\d{3}$`)
	AgreementNumberPattern = regexp.MustCompile(`^A-\d{4}-\d{3}$`)
)

// NewLeadID generates a lead id for the given year.
func NewLeadID(year int) string {
	return fmt.Sprintf("L-%d-%03d", year, rand.IntN(1000))
}

// NewAgreementNumber generates an agreement number for the given year.
func NewAgreementNumber(year int) string {
	return fmt.Sprintf("A-%d-%03d", year, rand.IntN(1000))
}
