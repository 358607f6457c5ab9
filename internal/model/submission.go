package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SubmissionKind distinguishes the short lead inquiry from a full order.
type SubmissionKind string

const (
	KindLead  SubmissionKind = "lead"
	KindOrder SubmissionKind = "order"
)

// Submission is the canonical order/inquiry relayed to the shop.
// It lives for one request and is never stored.
type Submission struct {
	Kind SubmissionKind

	ApplicantName    string
	ApplicantPhone   string
	ApplicantEmail   string
	ApplicantAddress string

	CatalogID   string
	CatalogName string
	Quantity    int

	PreferredTime string
	Message       string

	RecipientName    string
	RecipientAddress string
	RecipientPhone   string
}

// Quantity accepts a JSON number, a numeric string, or null.
type Quantity int

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*q = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("quantity %q is not a number", s)
		}
		*q = Quantity(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be an integer: %w", err)
	}
	*q = Quantity(n)
	return nil
}

// LeadRequest is the short inquiry payload accepted by POST /api/lead.
type LeadRequest struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email,omitempty"`
	CatalogID     string   `json:"catalogId,omitempty"`
	Quantity      Quantity `json:"quantity,omitempty"`
	PreferredTime string   `json:"preferredTime,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// Submission converts the request into its canonical form.
func (r *LeadRequest) Submission() Submission {
	return Submission{
		Kind:           KindLead,
		ApplicantName:  r.Name,
		ApplicantPhone: r.Phone,
		ApplicantEmail: r.Email,
		CatalogID:      r.CatalogID,
		Quantity:       int(r.Quantity),
		PreferredTime:  r.PreferredTime,
		Message:        r.Message,
	}
}

// OrderRequest is the full order payload accepted by POST /api/order.
type OrderRequest struct {
	ApplicantName    string   `json:"applicant_name"`
	ApplicantAddress string   `json:"applicant_address,omitempty"`
	ApplicantPhone   string   `json:"applicant_phone"`
	ApplicantEmail   string   `json:"applicant_email"`
	CatalogID        string   `json:"catalog_id"`
	CatalogName      string   `json:"catalog_name,omitempty"`
	Quantity         Quantity `json:"quantity"`
	PreferredTime    string   `json:"preferred_time,omitempty"`
	Message          string   `json:"message,omitempty"`
	RecipientName    string   `json:"recipient_name"`
	RecipientAddress string   `json:"recipient_address"`
	RecipientPhone   string   `json:"recipient_phone,omitempty"`
}

// Submission converts the request into its canonical form.
func (r *OrderRequest) Submission() Submission {
	return Submission{
		Kind:             KindOrder,
		ApplicantName:    r.ApplicantName,
		ApplicantPhone:   r.ApplicantPhone,
		ApplicantEmail:   r.ApplicantEmail,
		ApplicantAddress: r.ApplicantAddress,
		CatalogID:        r.CatalogID,
		CatalogName:      r.CatalogName,
		Quantity:         int(r.Quantity),
		PreferredTime:    r.PreferredTime,
		Message:          r.Message,
		RecipientName:    r.RecipientName,
		RecipientAddress: r.RecipientAddress,
		RecipientPhone:   r.RecipientPhone,
	}
}

// OrderForm is the draft posted by the storefront's HTML order form.
// Every field is kept as typed so the page can echo it back unchanged.
type OrderForm struct {
	ApplicantName    string `schema:"applicant_name"`
	ApplicantAddress string `schema:"applicant_address"`
	ApplicantPhone   string `schema:"applicant_phone"`
	ApplicantEmail   string `schema:"applicant_email"`
	CatalogID        string `schema:"catalog_id"`
	Quantity         string `schema:"quantity"`
	PreferredTime    string `schema:"preferred_time"`
	Message          string `schema:"message"`
	RecipientName    string `schema:"recipient_name"`
	RecipientAddress string `schema:"recipient_address"`
	RecipientPhone   string `schema:"recipient_phone"`
}

// Submission converts the form into its canonical form. A quantity that
// is not a number becomes -1 so validation reports it.
func (f *OrderForm) Submission() Submission {
	quantity := 1
	if s := strings.TrimSpace(f.Quantity); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			n = -1
		}
		quantity = n
	}

	return Submission{
		Kind:             KindOrder,
		ApplicantName:    f.ApplicantName,
		ApplicantPhone:   f.ApplicantPhone,
		ApplicantEmail:   f.ApplicantEmail,
		ApplicantAddress: f.ApplicantAddress,
		CatalogID:        f.CatalogID,
		Quantity:         quantity,
		PreferredTime:    f.PreferredTime,
		Message:          f.Message,
		RecipientName:    f.RecipientName,
		RecipientAddress: f.RecipientAddress,
		RecipientPhone:   f.RecipientPhone,
	}
}

// RelayResponse is returned by the relay endpoints on success.
type RelayResponse struct {
	OK bool `json:"ok"`
}
