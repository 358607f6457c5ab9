// Package validate holds the field rules shared by the order form and the
// relay endpoints.
package validate

import (
	"regexp"
	"strings"

	"flowershop/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizePhone strips every character that is not a digit. Full-width
// digits are folded to ASCII.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		}
	}
	return b.String()
}

// ValidPhone reports whether a normalized phone number has 10 or 11 digits.
func ValidPhone(digits string) bool {
	if len(digits) < 10 || len(digits) > 11 {
		return false
	}
	return NormalizePhone(digits) == digits
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Field names as they appear in the lead payload.
const (
	LeadName     = "name"
	LeadPhone    = "phone"
	LeadEmail    = "email"
	LeadQuantity = "quantity"
)

// Field names as they appear in the order payload and the HTML form.
const (
	ApplicantName    = "applicant_name"
	ApplicantPhone   = "applicant_phone"
	ApplicantEmail   = "applicant_email"
	CatalogID        = "catalog_id"
	Quantity         = "quantity"
	RecipientName    = "recipient_name"
	RecipientAddress = "recipient_address"
	RecipientPhone   = "recipient_phone"
)

type checker struct {
	fields []model.FieldError
}

func (c *checker) fail(field, code, message string) {
	c.fields = append(c.fields, model.FieldError{Field: field, Code: code, Message: message})
}

func (c *checker) required(field, value string) bool {
	if value == "" {
		c.fail(field, model.FieldRequired, "is required")
		return false
	}
	return true
}

func (c *checker) phone(field, digits string, required bool) {
	if digits == "" {
		if required {
			c.required(field, digits)
		}
		return
	}
	if !ValidPhone(digits) {
		c.fail(field, model.FieldPhone, "must be 10 or 11 digits")
	}
}

func (c *checker) email(field, value string, required bool) {
	if value == "" {
		if required {
			c.required(field, value)
		}
		return
	}
	if !ValidEmail(value) {
		c.fail(field, model.FieldEmail, "is not a valid email address")
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &model.ValidationError{Fields: c.fields}
}

// Submission trims every field, normalizes the phone numbers in place and
// checks the rules for the submission's kind. It returns a
// *model.ValidationError listing the invalid fields in form order.
func Submission(s *model.Submission) error {
	trim(s)
	s.ApplicantPhone = NormalizePhone(s.ApplicantPhone)
	s.RecipientPhone = NormalizePhone(s.RecipientPhone)

	var c checker
	switch s.Kind {
	case model.KindLead:
		c.required(LeadName, s.ApplicantName)
		c.phone(LeadPhone, s.ApplicantPhone, true)
		c.email(LeadEmail, s.ApplicantEmail, false)
		if s.Quantity < 0 {
			c.fail(LeadQuantity, model.FieldQuantity, "must not be negative")
		}
	default:
		c.required(ApplicantName, s.ApplicantName)
		c.phone(ApplicantPhone, s.ApplicantPhone, true)
		c.email(ApplicantEmail, s.ApplicantEmail, true)
		c.required(CatalogID, s.CatalogID)
		if s.Quantity < 1 {
			c.fail(Quantity, model.FieldQuantity, "must be at least 1")
		}
		c.required(RecipientName, s.RecipientName)
		c.required(RecipientAddress, s.RecipientAddress)
		c.phone(RecipientPhone, s.RecipientPhone, false)
	}

	return c.err()
}

func trim(s *model.Submission) {
	for _, f := range []*string{
		&s.ApplicantName, &s.ApplicantPhone, &s.ApplicantEmail, &s.ApplicantAddress,
		&s.CatalogID, &s.CatalogName, &s.PreferredTime, &s.Message,
		&s.RecipientName, &s.RecipientAddress, &s.RecipientPhone,
	} {
		*f = strings.TrimSpace(*f)
	}
}
