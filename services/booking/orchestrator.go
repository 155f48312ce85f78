package booking

import (
	"context"
	"fmt"
	"time"

	"rentnest/config"
	"rentnest/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// moveInReminderLead is how far before the lease start the reminder fires.
const moveInReminderLead = 72 * time.Hour

// validateForm fails fast on missing required fields. No network call is
// made before validation passes.
func validateForm(tenantID string, form models.BookingForm) *ValidationError {
	switch {
	case tenantID == "":
		return &ValidationError{Field: "authToken"}
	case form.PropertyID == "":
		return &ValidationError{Field: "propertyId"}
	case form.BedroomID == "":
		return &ValidationError{Field: "bedroomId"}
	case form.MoveInDate == "":
		return &ValidationError{Field: "moveInDate"}
	}
	return nil
}

// formKey identifies one form instance for the in-flight submit guard.
func formKey(tenantID string, form models.BookingForm) string {
	return tenantID + ":" + form.PropertyID + ":" + form.BedroomID
}

// loadPricing resolves the selected property and bedroom into a pricing
// input. An unknown or already-taken bedroom is a validation failure.
func (s *DefaultBookingService) loadPricing(form models.BookingForm) (*models.Property, models.PricingInput, error) {
	property, err := s.PropertyRepo.GetByID(form.PropertyID)
	if err != nil {
		return nil, models.PricingInput{}, &ValidationError{Field: "propertyId"}
	}

	bedroom := property.FindBedroom(form.BedroomID)
	if bedroom == nil || !bedroom.Available {
		return nil, models.PricingInput{}, &ValidationError{Field: "bedroomId"}
	}

	currency := property.Currency
	if currency == "" {
		currency = config.AppConfig.DefaultCurrency
	}

	return property, models.PricingInput{
		MonthlyRent:     bedroom.MonthlyRent,
		SecurityDeposit: property.SecurityDeposit,
		Currency:        currency,
	}, nil
}

// Quote computes the amount due and creates the payment intent, storing a
// pending booking session for the payment dialog. Nothing has been charged
// and no booking exists yet.
func (s *DefaultBookingService) Quote(ctx context.Context, tenantID string, form models.BookingForm) (*models.BookingQuoteResponse, error) {
	if verr := validateForm(tenantID, form); verr != nil {
		return nil, verr
	}

	property, pricing, err := s.loadPricing(form)
	if err != nil {
		return nil, err
	}

	quote := ComputeAmountDue(pricing, property.BookingOptions)

	intent, err := s.Processor.CreateIntent(ctx, quote.Amount, quote.Currency, map[string]string{
		"tenantId":   tenantID,
		"propertyId": form.PropertyID,
		"bedroomId":  form.BedroomID,
	})
	if err != nil {
		return nil, &PaymentInitError{Cause: err}
	}

	pending := &models.PendingBooking{
		SessionID:       uuid.New().String(),
		TenantID:        tenantID,
		LandlordID:      property.LandlordID,
		Form:            form,
		Quote:           quote,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		CreatedAt:       time.Now(),
	}
	if err := s.Sessions.Save(ctx, pending); err != nil {
		// Nothing was charged; void the intent so it cannot be confirmed later.
		if cerr := s.Processor.CancelIntent(ctx, intent.ID); cerr != nil {
			s.Logger.Warn("Failed to cancel orphaned payment intent", zap.String("intentID", intent.ID), zap.Error(cerr))
		}
		return nil, &PaymentInitError{Cause: err}
	}

	s.Logger.Info("Booking quote issued",
		zap.String("sessionID", pending.SessionID),
		zap.Float64("amount", quote.Amount),
		zap.String("currency", quote.Currency))

	return &models.BookingQuoteResponse{
		SessionID:    pending.SessionID,
		Quote:        quote,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmSession captures the charge for a pending session and, only after
// the processor reports success, persists the booking record.
func (s *DefaultBookingService) ConfirmSession(ctx context.Context, tenantID, sessionID, paymentMethodID string) (*models.Booking, error) {
	if tenantID == "" {
		return nil, &ValidationError{Field: "authToken"}
	}
	if sessionID == "" {
		return nil, &ValidationError{Field: "sessionId"}
	}
	if paymentMethodID == "" {
		return nil, &ValidationError{Field: "paymentMethodId"}
	}

	pending, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if pending.TenantID != tenantID {
		return nil, ErrSessionNotFound
	}

	key := formKey(tenantID, pending.Form)
	acquired, err := s.Sessions.AcquireInflight(ctx, key)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer s.releaseGuard(ctx, key)

	return s.captureAndPersist(ctx, pending, paymentMethodID)
}

// CancelSession discards a pending booking before confirmation. The booking
// repository is never touched: cancellation is safe at any point before the
// charge succeeds.
func (s *DefaultBookingService) CancelSession(ctx context.Context, tenantID, sessionID string) error {
	pending, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if pending.TenantID != tenantID {
		return ErrSessionNotFound
	}

	if err := s.Processor.CancelIntent(ctx, pending.PaymentIntentID); err != nil {
		// The intent expires server-side anyway; log and continue.
		s.Logger.Warn("Failed to cancel payment intent on session cancel",
			zap.String("intentID", pending.PaymentIntentID), zap.Error(err))
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to discard pending booking: %w", err)
	}

	s.Logger.Info("Booking session cancelled", zap.String("sessionID", sessionID))
	return nil
}

// SubmitBooking runs the full sequence in one call: validate, price, create
// the payment intent, confirm the charge, then persist the booking. Each
// step starts only after the previous one returned.
func (s *DefaultBookingService) SubmitBooking(ctx context.Context, tenantID string, req models.BookingRequest) (*models.Booking, error) {
	if verr := validateForm(tenantID, req.Form); verr != nil {
		return nil, verr
	}
	if req.PaymentMethodID == "" {
		return nil, &ValidationError{Field: "paymentMethodId"}
	}

	key := formKey(tenantID, req.Form)
	acquired, err := s.Sessions.AcquireInflight(ctx, key)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer s.releaseGuard(ctx, key)

	property, pricing, err := s.loadPricing(req.Form)
	if err != nil {
		return nil, err
	}

	quote := ComputeAmountDue(pricing, property.BookingOptions)

	intent, err := s.Processor.CreateIntent(ctx, quote.Amount, quote.Currency, map[string]string{
		"tenantId":   tenantID,
		"propertyId": req.Form.PropertyID,
		"bedroomId":  req.Form.BedroomID,
	})
	if err != nil {
		return nil, &PaymentInitError{Cause: err}
	}

	pending := &models.PendingBooking{
		SessionID:       uuid.New().String(),
		TenantID:        tenantID,
		LandlordID:      property.LandlordID,
		Form:            req.Form,
		Quote:           quote,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		CreatedAt:       time.Now(),
	}

	return s.captureAndPersist(ctx, pending, req.PaymentMethodID)
}

// captureAndPersist runs steps 4 and 5: confirm the charge, then create the
// booking record. A decline discards the pending state (a retry starts over
// with a fresh intent); a persistence failure after a captured charge is
// surfaced as the distinct, non-retryable BookingPersistError.
func (s *DefaultBookingService) captureAndPersist(ctx context.Context, pending *models.PendingBooking, paymentMethodID string) (*models.Booking, error) {
	conf, err := s.Processor.ConfirmPayment(ctx, pending.PaymentIntentID, paymentMethodID)
	if err != nil {
		s.discardSession(ctx, pending.SessionID)
		return nil, &PaymentDeclinedError{Message: err.Error()}
	}
	if conf.Status != StatusSucceeded {
		s.discardSession(ctx, pending.SessionID)
		msg := conf.Message
		if msg == "" {
			msg = fmt.Sprintf("payment not completed (status %q)", conf.Status)
		}
		return nil, &PaymentDeclinedError{Message: msg}
	}

	record := buildBookingRecord(pending, conf.PaymentIntentID)
	if err := s.BookingRepo.Create(record); err != nil {
		s.discardSession(ctx, pending.SessionID)
		s.Logger.Error("Charge captured but booking creation failed",
			zap.String("paymentIntentID", conf.PaymentIntentID),
			zap.String("tenantID", pending.TenantID),
			zap.Error(err))
		return nil, &BookingPersistError{PaymentIntentID: conf.PaymentIntentID, Cause: err}
	}

	s.discardSession(ctx, pending.SessionID)
	s.finalizeBooking(ctx, record)

	s.Logger.Info("Booking confirmed",
		zap.String("bookingID", record.ID),
		zap.String("paymentIntentID", record.PaymentIntentID),
		zap.Float64("amount", record.Amount))

	return record, nil
}

// buildBookingRecord converts a pending booking into the authoritative
// record, carrying the payment reference.
func buildBookingRecord(pending *models.PendingBooking, paymentIntentID string) *models.Booking {
	record := &models.Booking{
		ID:              uuid.New().String(),
		PropertyID:      pending.Form.PropertyID,
		BedroomID:       pending.Form.BedroomID,
		TenantID:        pending.TenantID,
		LandlordID:      pending.LandlordID,
		MoveInDate:      pending.Form.MoveInDate,
		MoveOutDate:     pending.Form.MoveOutDate,
		Amount:          pending.Quote.Amount,
		Currency:        pending.Quote.Currency,
		PaymentIntentID: paymentIntentID,
		PaymentStatus:   "completed",
		Status:          "confirmed",
	}
	if pending.Quote.LastMonthPayment != nil {
		record.LastMonthPayment = *pending.Quote.LastMonthPayment
	}
	if pending.Quote.SecurityDepositCharged != nil {
		record.SecurityDeposit = *pending.Quote.SecurityDepositCharged
	}
	return record
}

// finalizeBooking runs post-persist side effects. These are best-effort:
// the booking already exists, so failures are logged, not surfaced.
func (s *DefaultBookingService) finalizeBooking(ctx context.Context, record *models.Booking) {
	if err := s.PropertyRepo.SetBedroomAvailability(record.PropertyID, record.BedroomID, false); err != nil {
		s.Logger.Warn("Failed to mark bedroom unavailable",
			zap.String("propertyID", record.PropertyID),
			zap.String("bedroomID", record.BedroomID),
			zap.Error(err))
	}

	tenant, err := s.UserRepo.GetByID(record.TenantID)
	if err != nil {
		s.Logger.Warn("Failed to load tenant for notification", zap.String("tenantID", record.TenantID), zap.Error(err))
		return
	}
	if err := s.Notifier.NotifyBookingConfirmed(ctx, tenant, record); err != nil {
		s.Logger.Warn("Failed to push booking confirmation", zap.Error(err))
	}

	s.scheduleMoveInReminder(record)
}

func (s *DefaultBookingService) scheduleMoveInReminder(record *models.Booking) {
	moveIn, err := time.Parse("2006-01-02", record.MoveInDate)
	if err != nil {
		s.Logger.Warn("Unparseable move-in date, skipping reminder",
			zap.String("moveInDate", record.MoveInDate), zap.Error(err))
		return
	}
	fireAt := moveIn.Add(-moveInReminderLead)
	if !fireAt.After(time.Now()) {
		return
	}

	payload := models.MoveInReminderPayload{
		BookingID:  record.ID,
		TenantID:   record.TenantID,
		MoveInDate: record.MoveInDate,
	}
	if err := s.Scheduler.ScheduleMoveInReminder(payload, fireAt); err != nil {
		s.Logger.Warn("Failed to schedule move-in reminder", zap.String("bookingID", record.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) discardSession(ctx context.Context, sessionID string) {
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("Failed to discard booking session", zap.String("sessionID", sessionID), zap.Error(err))
	}
}

func (s *DefaultBookingService) releaseGuard(ctx context.Context, key string) {
	if err := s.Sessions.ReleaseInflight(ctx, key); err != nil {
		s.Logger.Warn("Failed to release in-flight guard", zap.String("key", key), zap.Error(err))
	}
}

// TenantBookings returns the tenant's confirmed bookings (the view the
// client lands on after a successful submission).
func (s *DefaultBookingService) TenantBookings(ctx context.Context, tenantID string) ([]models.Booking, error) {
	if tenantID == "" {
		return nil, &ValidationError{Field: "authToken"}
	}
	return s.BookingRepo.GetByTenant(tenantID)
}
