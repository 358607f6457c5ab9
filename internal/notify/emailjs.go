package notify

import (
	"context"
	"errors"
	"net/http"

	"flowershop/internal/config"
	"flowershop/internal/model"
)

// EmailJS sends one EmailJS template per submission.
type EmailJS struct {
	name       string
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	confirm    bool
	client     *http.Client
}

// NewEmailJSAdmin creates the channel that notifies the shop.
func NewEmailJSAdmin(cfg config.EmailJSConfig, client *http.Client) *EmailJS {
	return newEmailJS("emailjs-admin", cfg, cfg.TemplateAdmin, false, client)
}

// NewEmailJSConfirm creates the channel that acknowledges the customer.
// It only applies to submissions carrying an applicant email.
func NewEmailJSConfirm(cfg config.EmailJSConfig, client *http.Client) *EmailJS {
	return newEmailJS("emailjs-confirm", cfg, cfg.TemplateConfirm, true, client)
}

func newEmailJS(name string, cfg config.EmailJSConfig, templateID string, confirm bool, client *http.Client) *EmailJS {
	return &EmailJS{
		name:       name,
		endpoint:   cfg.Endpoint,
		serviceID:  cfg.ServiceID,
		templateID: templateID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		confirm:    confirm,
		client:     client,
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id,omitempty"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Name() string { return e.name }

func (e *EmailJS) Ready() error {
	switch {
	case e.endpoint == "":
		return errors.New("EmailJS endpoint is missing")
	case e.serviceID == "":
		return errors.New("EmailJS service ID is missing")
	case e.templateID == "":
		return errors.New("EmailJS template ID is missing")
	case e.privateKey == "" && e.publicKey == "":
		return errors.New("EmailJS key is missing")
	}
	return nil
}

func (e *EmailJS) Applies(s model.Submission) bool {
	if e.confirm {
		return s.ApplicantEmail != ""
	}
	return true
}

func (e *EmailJS) Send(ctx context.Context, s model.Submission) error {
	body := emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     e.templateID,
		UserID:         e.publicKey,
		AccessToken:    e.privateKey,
		TemplateParams: TemplateParams(s),
	}
	body.TemplateParams["subject"] = Subject(s)
	body.TemplateParams["body"] = Text(s)

	return postJSON(ctx, e.client, e.endpoint, bearer(e.privateKey), body)
}
