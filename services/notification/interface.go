package notification

import (
	"context"

	"rentnest/models"
)

// NotificationService delivers push notifications to user devices.
type NotificationService interface {
	SendPush(ctx context.Context, msg models.PushMessage) error
	NotifyBookingConfirmed(ctx context.Context, user *models.User, booking *models.Booking) error
	NotifyEnquiry(ctx context.Context, landlord *models.User, enquiry *models.Enquiry) error
}
