package validation

import "testing"

func TestValidateContactField(t *testing.T) {
	cases := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"first name ok", FieldFirstName, "Anna", false},
		{"first name empty", FieldFirstName, "", true},
		{"first name whitespace only", FieldFirstName, "   ", true},
		{"last name ok", FieldLastName, "Ozola", false},
		{"last name empty", FieldLastName, "", true},
		{"email ok", FieldEmail, "anna@example.com", false},
		{"email empty", FieldEmail, "", true},
		{"email no at", FieldEmail, "anna.example.com", true},
		{"email no tld", FieldEmail, "anna@example", true},
		{"email spaces", FieldEmail, "anna @example.com", true},
		{"phone ok plus", FieldPhone, "+37120000000", false},
		{"phone ok spaces", FieldPhone, "2000 0000", false},
		{"phone empty", FieldPhone, "", true},
		{"phone too short", FieldPhone, "12345", true},
		{"phone letters", FieldPhone, "20000abc", true},
		{"unknown field is always valid", "nickname", "", false},
	}

	for _, tc := range cases {
		msg := ValidateContactField(tc.field, tc.value)
		if tc.wantErr && msg == "" {
			t.Errorf("%s: expected an error message, got none", tc.name)
		}
		if !tc.wantErr && msg != "" {
			t.Errorf("%s: expected no error, got %q", tc.name, msg)
		}
	}
}

// The form validator must agree with the per-field validator on every field.
func TestValidateContactForm_ParityWithFieldValidation(t *testing.T) {
	forms := []ContactForm{
		{FirstName: "Anna", LastName: "Ozola", Email: "anna@example.com", Phone: "+37120000000"},
		{FirstName: "", LastName: "Ozola", Email: "bad", Phone: "123"},
		{FirstName: "Anna", LastName: "", Email: "", Phone: ""},
		{},
	}

	for _, form := range forms {
		errs := ValidateContactForm(form)
		values := map[string]string{
			FieldFirstName: form.FirstName,
			FieldLastName:  form.LastName,
			FieldEmail:     form.Email,
			FieldPhone:     form.Phone,
		}
		for field, value := range values {
			want := ValidateContactField(field, value)
			if got := errs[field]; got != want {
				t.Errorf("form %+v field %s: form says %q, field says %q", form, field, got, want)
			}
		}
	}
}

func TestValidateContactForm_CollectsAllErrors(t *testing.T) {
	errs := ValidateContactForm(ContactForm{
		FirstName: "Anna",
		LastName:  "",
		Email:     "not-an-email",
		Phone:     "abc",
	})

	if IsValidForm(errs) {
		t.Fatal("expected an invalid form")
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if _, ok := errs[FieldFirstName]; ok {
		t.Error("firstName should be valid")
	}
	for _, field := range []string{FieldLastName, FieldEmail, FieldPhone} {
		if errs[field] == "" {
			t.Errorf("expected an error for %s", field)
		}
	}
}

func TestIsValidForm(t *testing.T) {
	if !IsValidForm(ValidateContactForm(ContactForm{
		FirstName: "Anna", LastName: "Ozola",
		Email: "anna@example.com", Phone: "+37120000000",
	})) {
		t.Fatal("expected a fully valid form")
	}
	if IsValidForm(map[string]string{FieldEmail: "Invalid email address"}) {
		t.Fatal("expected invalid with one error present")
	}
}
