// Package validation provides the intake validators: the contact-form rules
// used at prospect creation and the agreement-data completeness check used as
// the agreement-creation gate. Both are pure; failures are returned as data,
// never thrown.
package validation

import (
	"regexp"
	"strings"
)

// Contact form field names. These match the wire contract of the Lead record.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
)

var (
	// local@domain.tld, nothing fancier.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Permissive: +, digits, spaces, parentheses, hyphens, dots; 7-20 chars.
	phonePattern = regexp.MustCompile(`^[+0-9 ().\-]{7,20}$`)
)

// ContactForm is the intake form input.
type ContactForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ValidateContactField validates a single field; the empty string means
// valid. Used for live-typing feedback, and by ValidateContactForm so the
// two paths can never disagree.
func ValidateContactField(field, value string) string {
	value = strings.TrimSpace(value)

	switch field {
	case FieldFirstName:
		if value == "" {
			return "First name is required"
		}
	case FieldLastName:
		if value == "" {
			return "Last name is required"
		}
	case FieldEmail:
		if value == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Invalid email address"
		}
	case FieldPhone:
		if value == "" {
			return "Phone is required"
		}
		if !phonePattern.MatchString(value) {
			return "Invalid phone number"
		}
	}
	return ""
}

// ValidateContactForm validates the whole form. The result maps field name to
// a human-readable message; absence of a key means the field is valid.
func ValidateContactForm(form ContactForm) map[string]string {
	errs := make(map[string]string)
	fields := map[string]string{
		FieldFirstName: form.FirstName,
		FieldLastName:  form.LastName,
		FieldEmail:     form.Email,
		FieldPhone:     form.Phone,
	}
	for field, value := range fields {
		if msg := ValidateContactField(field, value); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// IsValidForm reports whether a validation result carries no errors.
func IsValidForm(errs map[string]string) bool {
	return len(errs) == 0
}
