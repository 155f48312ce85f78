package handlers

import (
	"errors"
	"net/http"

	"rentnest/middleware"
	"rentnest/models"
	"rentnest/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking orchestration endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(service booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// respondBookingError maps the orchestrator's error taxonomy onto HTTP
// responses. Persist failures get a distinct contact-support payload with
// no retry affordance; everything else is retryable from the form.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	var initErr *booking.PaymentInitError
	var declineErr *booking.PaymentDeclinedError
	var persistErr *booking.BookingPersistError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "missing required field",
			"field":     verr.Field,
			"retryable": true,
		})
	case errors.Is(err, booking.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "a submission for this booking is already in progress",
			"retryable": false,
		})
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "booking session not found or expired",
			"retryable": true,
		})
	case errors.As(err, &initErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "could not initialize payment, no charge was made",
			"retryable": true,
		})
	case errors.As(err, &declineErr):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     declineErr.Message,
			"retryable": true,
		})
	case errors.As(err, &persistErr):
		// The charge was captured. Resubmitting would charge again.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          "your payment was received but the booking could not be recorded; please contact support",
			"paymentIntent":  persistErr.PaymentIntentID,
			"contactSupport": true,
			"retryable":      false,
		})
	default:
		h.Logger.Error("Booking request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking request failed"})
	}
}

// Quote computes the amount due and opens a pending booking session.
func (h *BookingHandler) Quote(c *gin.Context) {
	var form models.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Quote(c.Request.Context(), middleware.UserID(c), form)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirm captures the charge for a pending session and persists the booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input struct {
		SessionID       string `json:"sessionId"`
		PaymentMethodID string `json:"paymentMethodId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record, err := h.Service.ConfirmSession(c.Request.Context(), middleware.UserID(c), input.SessionID, input.PaymentMethodID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record})
}

// Cancel discards a pending booking session before payment.
func (h *BookingHandler) Cancel(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.CancelSession(c.Request.Context(), middleware.UserID(c), sessionID); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Submit runs the full booking sequence in a single request.
func (h *BookingHandler) Submit(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record, err := h.Service.SubmitBooking(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": record})
}

// ListMine returns the authenticated tenant's bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.Service.TenantBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
