package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flowershop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRelayService is a mock implementation of RelayService.
type MockRelayService struct {
	mock.Mock
}

func (m *MockRelayService) Submit(ctx context.Context, s model.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestRelayHandler_Lead(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		mockError      error
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			body:           `{"name":"Yamada","phone":"09012345678","catalogId":"A1","quantity":2}`,
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Quantity as string",
			body:           `{"name":"Yamada","phone":"09012345678","quantity":"3"}`,
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Malformed JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Validation failure",
			body:           `{"name":"Yamada","phone":"090"}`,
			mockError:      &model.ValidationError{Fields: []model.FieldError{{Field: "phone", Code: model.FieldPhone, Message: "must be 10 or 11 digits"}}},
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeBadRequest,
		},
		{
			name:           "Relay not configured",
			body:           `{"name":"Yamada","phone":"09012345678"}`,
			mockError:      fmt.Errorf("%w: slack: webhook URL is missing", model.ErrRelayNotConfigured),
			expectService:  true,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeRelayNotConfigured,
		},
		{
			name:           "Provider failure",
			body:           `{"name":"Yamada","phone":"09012345678"}`,
			mockError:      &model.SendError{Channel: "resend", Err: errors.New("status 422: invalid from address")},
			expectService:  true,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeSendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := new(MockRelayService)
			if tt.expectService {
				relay.On("Submit", mock.Anything, mock.MatchedBy(func(s model.Submission) bool {
					return s.Kind == model.KindLead && s.ApplicantName == "Yamada"
				})).Return(tt.mockError)
			}

			handler := NewRelayHandler(relay, logger)
			req := httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Lead(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.expectedCode == "" {
				var resp model.RelayResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.True(t, resp.OK)
			} else {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
				assert.NotEmpty(t, resp.Detail)
			}

			if tt.expectService {
				relay.AssertExpectations(t)
			} else {
				relay.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRelayHandler_Order(t *testing.T) {
	relay := new(MockRelayService)
	relay.On("Submit", mock.Anything, mock.MatchedBy(func(s model.Submission) bool {
		return s.Kind == model.KindOrder &&
			s.ApplicantEmail == "hanako@example.com" &&
			s.CatalogID == "B1" &&
			s.Quantity == 1 &&
			s.RecipientName == "Suzuki"
	})).Return(nil).Once()

	body := `{
		"applicant_name": "Yamada Hanako",
		"applicant_phone": "090-1234-5678",
		"applicant_email": "hanako@example.com",
		"catalog_id": "B1",
		"quantity": 1,
		"recipient_name": "Suzuki",
		"recipient_address": "Tokyo"
	}`

	w := httptest.NewRecorder()
	NewRelayHandler(relay, zerolog.Nop()).Order(w, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	relay.AssertExpectations(t)
}

func TestRelayHandler_BodyTooLarge(t *testing.T) {
	relay := new(MockRelayService)
	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	w := httptest.NewRecorder()
	NewRelayHandler(relay, zerolog.Nop()).Lead(w, httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	relay.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
