package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"flowershop/internal/config"
	"flowershop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest is one request seen by the recording server.
type capturedRequest struct {
	Path   string
	Header http.Header
	Body   map[string]interface{}
}

type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	reply    string
}

func newRecorder(t *testing.T, status int, reply string) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{status: status, reply: reply}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		_ = json.Unmarshal(raw, &body)

		rec.mu.Lock()
		rec.requests = append(rec.requests, capturedRequest{Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
		rec.mu.Unlock()

		w.WriteHeader(rec.status)
		w.Write([]byte(rec.reply))
	}))
	t.Cleanup(server.Close)
	return rec, server
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.requests...)
}

func orderSubmission() model.Submission {
	return model.Submission{
		Kind:             model.KindOrder,
		ApplicantName:    "山田 花子",
		ApplicantPhone:   "09012345678",
		ApplicantEmail:   "hanako@example.com",
		CatalogID:        "A1",
		CatalogName:      "春のブーケ",
		Quantity:         2,
		PreferredTime:    "午前中",
		Message:          "ピンク系で",
		RecipientName:    "佐藤 一郎",
		RecipientAddress: "東京都千代田区1-1",
	}
}

func TestEmailJS_SendWithPrivateKey(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, "OK")
	cfg := config.EmailJSConfig{
		ServiceID: "service_x", TemplateAdmin: "tpl_admin", TemplateConfirm: "tpl_confirm",
		PublicKey: "pub", PrivateKey: "priv", Endpoint: server.URL,
	}

	channel := NewEmailJSAdmin(cfg, server.Client())
	require.NoError(t, channel.Ready())
	require.NoError(t, channel.Send(context.Background(), orderSubmission()))

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer priv", requests[0].Header.Get("Authorization"))
	assert.Equal(t, "application/json", requests[0].Header.Get("Content-Type"))
	assert.Equal(t, "service_x", requests[0].Body["service_id"])
	assert.Equal(t, "tpl_admin", requests[0].Body["template_id"])
	assert.Equal(t, "pub", requests[0].Body["user_id"])
	assert.Equal(t, "priv", requests[0].Body["accessToken"])

	params := requests[0].Body["template_params"].(map[string]interface{})
	assert.Equal(t, "山田 花子", params["applicant_name"])
	assert.Equal(t, "2", params["quantity"])
	assert.Contains(t, params["subject"], "【新規申込み】山田 花子 様 / A1")
}

func TestEmailJS_PublicKeyOnly(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, "OK")
	cfg := config.EmailJSConfig{
		ServiceID: "service_x", TemplateAdmin: "tpl_admin", TemplateConfirm: "tpl_confirm",
		PublicKey: "pub", Endpoint: server.URL,
	}

	require.NoError(t, NewEmailJSConfirm(cfg, server.Client()).Send(context.Background(), orderSubmission()))

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Empty(t, requests[0].Header.Get("Authorization"))
	assert.Equal(t, "pub", requests[0].Body["user_id"])
	assert.NotContains(t, requests[0].Body, "accessToken")
	assert.Equal(t, "tpl_confirm", requests[0].Body["template_id"])
}

func TestEmailJS_ProviderErrorCarriesDetail(t *testing.T) {
	_, server := newRecorder(t, http.StatusBadRequest, "The template ID is invalid")
	cfg := config.EmailJSConfig{ServiceID: "s", TemplateAdmin: "bad", TemplateConfirm: "c", PublicKey: "pub", Endpoint: server.URL}

	err := NewEmailJSAdmin(cfg, server.Client()).Send(context.Background(), orderSubmission())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "The template ID is invalid")
}

func TestEmailJS_ReadyAndApplies(t *testing.T) {
	cfg := config.EmailJSConfig{ServiceID: "s", TemplateAdmin: "a", Endpoint: "http://emailjs.invalid", PublicKey: "pub"}

	admin := NewEmailJSAdmin(cfg, http.DefaultClient)
	confirm := NewEmailJSConfirm(cfg, http.DefaultClient)

	assert.NoError(t, admin.Ready())
	assert.Error(t, confirm.Ready(), "confirm template is missing")

	lead := model.Submission{Kind: model.KindLead, ApplicantName: "Yamada", ApplicantPhone: "09012345678"}
	assert.True(t, admin.Applies(lead))
	assert.False(t, confirm.Applies(lead))
	assert.True(t, confirm.Applies(orderSubmission()))
}

func TestResend_Send(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, `{"id":"email_1"}`)
	channel := NewResend(config.ResendConfig{
		APIKey: "re_123", From: "shop@example.com", To: "owner@example.com", Endpoint: server.URL,
	}, server.Client())

	require.NoError(t, channel.Ready())
	require.NoError(t, channel.Send(context.Background(), orderSubmission()))

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer re_123", requests[0].Header.Get("Authorization"))
	assert.Equal(t, "shop@example.com", requests[0].Body["from"])
	assert.Equal(t, []interface{}{"owner@example.com"}, requests[0].Body["to"])
	assert.Equal(t, "hanako@example.com", requests[0].Body["reply_to"])
	assert.Contains(t, requests[0].Body["text"], "■お名前: 山田 花子")
}

func TestResend_NotReady(t *testing.T) {
	channel := NewResend(config.ResendConfig{APIKey: "re_123", Endpoint: "http://resend.invalid"}, http.DefaultClient)
	assert.Error(t, channel.Ready())
}

func TestSlack_Send(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, "ok")
	channel := NewSlack(server.URL+"/services/T/B/X", server.Client())

	require.NoError(t, channel.Ready())
	require.NoError(t, channel.Send(context.Background(), orderSubmission()))

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/services/T/B/X", requests[0].Path)
	assert.Contains(t, requests[0].Body["text"], "新規申込み\n■お名前: 山田 花子")
}

func TestSlack_Failure(t *testing.T) {
	_, server := newRecorder(t, http.StatusNotFound, "no_service")
	err := NewSlack(server.URL, server.Client()).Send(context.Background(), orderSubmission())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_service")
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		expected []string
	}{
		{
			name:     "Nothing configured",
			cfg:      config.Config{},
			expected: nil,
		},
		{
			name: "EmailJS yields admin and confirm",
			cfg: config.Config{EmailJS: config.EmailJSConfig{
				ServiceID: "s", TemplateAdmin: "a", TemplateConfirm: "c", PublicKey: "p",
			}},
			expected: []string{"emailjs-admin", "emailjs-confirm"},
		},
		{
			name: "Resend and Slack",
			cfg: config.Config{
				Resend: config.ResendConfig{APIKey: "k", From: "f@example.com", To: "t@example.com"},
				Slack:  config.SlackConfig{WebhookURL: "https://hooks.slack.com/services/x"},
			},
			expected: []string{"resend", "slack"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channels := FromConfig(&tt.cfg, nil)

			var names []string
			for _, c := range channels {
				names = append(names, c.Name())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestText_LeadOmitsRecipient(t *testing.T) {
	text := Text(model.Submission{
		Kind: model.KindLead, ApplicantName: "Yamada", ApplicantPhone: "09012345678",
		CatalogID: "A1", Quantity: 2, Message: "急ぎです",
	})

	assert.Contains(t, text, "■お名前: Yamada\n")
	assert.Contains(t, text, "■カタログ番号: A1\n")
	assert.Contains(t, text, "■数量: 2\n")
	assert.Contains(t, text, "■メモ:\n急ぎです\n")
	assert.NotContains(t, text, "お届け先")
	assert.NotContains(t, text, "メール")
}

func TestSubject_UnspecifiedCatalog(t *testing.T) {
	assert.Equal(t, "【新規申込み】Yamada 様 / 未指定", Subject(model.Submission{ApplicantName: "Yamada"}))
}
