package booking

import (
	"context"

	bookingRepo "rentnest/database/repository/booking"
	propertyRepo "rentnest/database/repository/property"
	userRepo "rentnest/database/repository/user"
	"rentnest/models"
	"rentnest/services/notification"
	"rentnest/services/tasks"

	"go.uber.org/zap"
)

// BookingService orchestrates booking price computation and the two-phase
// payment/booking interaction.
//
// Two usage shapes map onto the same pipeline: SubmitBooking runs the whole
// sequence in one call, while Quote/ConfirmSession/CancelSession split it
// around the client's payment dialog (the quote creates the payment intent
// and a pending session; confirmation captures the charge and persists the
// booking; cancellation discards the pending state without ever creating a
// booking record).
type BookingService interface {
	Quote(ctx context.Context, tenantID string, form models.BookingForm) (*models.BookingQuoteResponse, error)
	ConfirmSession(ctx context.Context, tenantID, sessionID, paymentMethodID string) (*models.Booking, error)
	CancelSession(ctx context.Context, tenantID, sessionID string) error
	SubmitBooking(ctx context.Context, tenantID string, req models.BookingRequest) (*models.Booking, error)
	TenantBookings(ctx context.Context, tenantID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Processor    PaymentProcessor
	Sessions     SessionStore
	BookingRepo  bookingRepo.BookingRepository
	PropertyRepo propertyRepo.PropertyRepository
	UserRepo     userRepo.UserRepository
	Notifier     notification.NotificationService
	Scheduler    tasks.Scheduler
	Logger       *zap.Logger
}
