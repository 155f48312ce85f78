package booking

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when a second submission arrives for a
// form that already has one in flight.
var ErrSubmissionInFlight = errors.New("a booking submission is already in progress for this form")

// ErrSessionNotFound is returned when a pending booking session has expired
// or was cancelled.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ValidationError reports a missing required field. No network call has been
// made; the form stays editable.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing required field %q", e.Field)
}

// PaymentInitError means a payment intent could not be created. Nothing was
// charged; the submission may be retried.
type PaymentInitError struct {
	Cause error
}

func (e *PaymentInitError) Error() string {
	return fmt.Sprintf("failed to initialize payment: %v", e.Cause)
}

func (e *PaymentInitError) Unwrap() error { return e.Cause }

// PaymentDeclinedError means the processor rejected the charge. Nothing was
// captured; a retry requests a fresh payment intent.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Message)
}

// BookingPersistError means the charge succeeded but the booking record
// could not be created. Resubmitting would charge the card again, so this
// must reach the user as a contact-support case, never a retry.
type BookingPersistError struct {
	PaymentIntentID string
	Cause           error
}

func (e *BookingPersistError) Error() string {
	return fmt.Sprintf("payment %s succeeded but booking record creation failed: %v", e.PaymentIntentID, e.Cause)
}

func (e *BookingPersistError) Unwrap() error { return e.Cause }
