package dto

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"jane@example.com", true},
		{"jane.doe+tag@sub.example.co.id", true},
		{"JANE@EXAMPLE.COM", true},
		{"", false},
		{"jane", false},
		{"jane@example", false},
		{"jane doe@example.com", false},
		{"@example.com", false},
		{"jane@", false},
		{" jane@example.com", false},
	}

	for _, tc := range cases {
		if got := IsValidEmail(tc.email); got != tc.valid {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tc.email, got, tc.valid)
		}
	}
}

func TestCreateContactRequestValidate(t *testing.T) {
	valid := CreateContactRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Hello",
		Message: "A long enough message",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*CreateContactRequest)
		message string
	}{
		{"missing name", func(r *CreateContactRequest) { r.Name = "" }, "Name is required"},
		{"blank name", func(r *CreateContactRequest) { r.Name = "   " }, "Name is required"},
		{"missing email", func(r *CreateContactRequest) { r.Email = "" }, "Email is required"},
		{"bad email", func(r *CreateContactRequest) { r.Email = "nope" }, "Invalid email format"},
		{"blank subject", func(r *CreateContactRequest) { r.Subject = " " }, "Subject is required"},
		{"short message", func(r *CreateContactRequest) { r.Message = "too short" }, "Message must be at least 10 characters"},
		{"padded short message", func(r *CreateContactRequest) { r.Message = "   hi    " }, "Message must be at least 10 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := req.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := FirstValidationMessage(err); got != tc.message {
				t.Errorf("message = %q, want %q", got, tc.message)
			}
		})
	}
}

func TestTrackVisitRequestValidate(t *testing.T) {
	if err := (TrackVisitRequest{Page: "/home"}).Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := (TrackVisitRequest{}).Validate(); err == nil {
		t.Error("empty page should be rejected")
	}
}
