package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentnest/models"
	"rentnest/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// stubBookingService returns a canned error (or success) from every operation.
type stubBookingService struct {
	err    error
	record *models.Booking
}

func (s *stubBookingService) Quote(ctx context.Context, tenantID string, form models.BookingForm) (*models.BookingQuoteResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingQuoteResponse{SessionID: "sess-1", ClientSecret: "pi_1_secret"}, nil
}

func (s *stubBookingService) ConfirmSession(ctx context.Context, tenantID, sessionID, paymentMethodID string) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubBookingService) CancelSession(ctx context.Context, tenantID, sessionID string) error {
	return s.err
}

func (s *stubBookingService) SubmitBooking(ctx context.Context, tenantID string, req models.BookingRequest) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubBookingService) TenantBookings(ctx context.Context, tenantID string) ([]models.Booking, error) {
	return nil, s.err
}

func buildBookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, zap.NewNop())

	r := gin.New()
	api := r.Group("/api/bookings")
	api.POST("/quote", h.Quote)
	api.POST("/confirm", h.Confirm)
	api.DELETE("/session/:sessionID", h.Cancel)
	api.POST("", h.Submit)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSubmitErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantRetry  bool
	}{
		{"validation", &booking.ValidationError{Field: "moveInDate"}, http.StatusBadRequest, true},
		{"in flight", booking.ErrSubmissionInFlight, http.StatusConflict, false},
		{"session gone", booking.ErrSessionNotFound, http.StatusNotFound, true},
		{"init failed", &booking.PaymentInitError{Cause: context.DeadlineExceeded}, http.StatusBadGateway, true},
		{"declined", &booking.PaymentDeclinedError{Message: "card declined"}, http.StatusPaymentRequired, true},
		{"persist failed", &booking.BookingPersistError{PaymentIntentID: "pi_9"}, http.StatusInternalServerError, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := buildBookingRouter(&stubBookingService{err: tc.err})

			resp := postJSON(t, r, "/api/bookings", `{"form":{},"paymentMethodId":"pm"}`)
			if resp.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tc.wantStatus, resp.Code, resp.Body.String())
			}

			var body map[string]any
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}
			if got, _ := body["retryable"].(bool); got != tc.wantRetry {
				t.Fatalf("expected retryable=%v, got %v", tc.wantRetry, body["retryable"])
			}
		})
	}
}

func TestSubmitPersistErrorPayload(t *testing.T) {
	r := buildBookingRouter(&stubBookingService{err: &booking.BookingPersistError{PaymentIntentID: "pi_9"}})

	resp := postJSON(t, r, "/api/bookings", `{"form":{},"paymentMethodId":"pm"}`)

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["contactSupport"] != true {
		t.Fatalf("persist failure must direct the user to support, got %v", body)
	}
	if body["paymentIntent"] != "pi_9" {
		t.Fatalf("persist failure must surface the intent reference, got %v", body)
	}
}

func TestSubmitSuccess(t *testing.T) {
	r := buildBookingRouter(&stubBookingService{
		record: &models.Booking{ID: "bk-1", Status: "confirmed"},
	})

	resp := postJSON(t, r, "/api/bookings", `{"form":{"propertyId":"p"},"paymentMethodId":"pm"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"bk-1"`) {
		t.Fatalf("expected the booking in the response, got %s", resp.Body.String())
	}
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	r := buildBookingRouter(&stubBookingService{})

	resp := postJSON(t, r, "/api/bookings", `{"form":`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestQuoteReturnsClientSecret(t *testing.T) {
	r := buildBookingRouter(&stubBookingService{})

	resp := postJSON(t, r, "/api/bookings/quote", `{"propertyId":"p","bedroomId":"b","moveInDate":"2026-09-01"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}

	var body models.BookingQuoteResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.ClientSecret != "pi_1_secret" {
		t.Fatalf("expected client secret in quote response, got %+v", body)
	}
}

func TestCancelSession(t *testing.T) {
	r := buildBookingRouter(&stubBookingService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/session/sess-1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
}
