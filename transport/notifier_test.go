package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/emmaeryne/amjednamoussa/transport"
)

type stubNotificationApp struct {
	called bool
}

func (s *stubNotificationApp) Process(_ context.Context, _ *model.OrderNotificationRequest) (*model.OrderNotificationResponse, error) {
	s.called = true
	return &model.OrderNotificationResponse{CustomerEmailID: "msg-1", AdminEmailID: "msg-2"}, nil
}

func validNotificationBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(&model.OrderNotificationRequest{
		OrderID:         "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		CustomerEmail:   "amal@example.com",
		CustomerName:    "Amal Ben Salah",
		CustomerPhone:   "21612345",
		CustomerAddress: "12 Rue de Carthage",
		CustomerCity:    "Tunis",
		Items: []model.NotificationItem{
			{Name: "Sac en osier", Price: 45, Quantity: 2},
		},
		Subtotal:    90,
		DeliveryFee: 7,
		TotalAmount: 97,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func TestNotifierTransport_APIKey(t *testing.T) {
	const apiKey = "internal-key"

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCode   string
		wantCalled bool
	}{
		{
			name:       "error: missing key rejected with error envelope",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantCode:   constant.ErrorTypeCode[constant.ErrUnauthorize],
		},
		{
			name:       "error: wrong key rejected with error envelope",
			authHeader: "Bearer not-the-key",
			wantStatus: http.StatusUnauthorized,
			wantCode:   constant.ErrorTypeCode[constant.ErrUnauthorize],
		},
		{
			name:       "success: valid key reaches the handler",
			authHeader: "Bearer " + apiKey,
			wantStatus: http.StatusOK,
			wantCode:   constant.ErrorTypeCode[constant.Successful],
			wantCalled: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := &stubNotificationApp{}
			handler := transport.NewNotifierTransport(app, apiKey)

			req := httptest.NewRequest(http.MethodPost, "/order-email", bytes.NewReader(validNotificationBody(t)))
			req.Header.Set("Content-Type", "application/json")
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("Content-Type = %q, want application/json", ct)
			}

			var res struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if res.Code != tt.wantCode {
				t.Fatalf("response code = %s, want %s", res.Code, tt.wantCode)
			}

			if app.called != tt.wantCalled {
				t.Fatalf("Process called = %v, want %v", app.called, tt.wantCalled)
			}
		})
	}
}
