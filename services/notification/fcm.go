package notification

import (
	"context"
	"fmt"

	"rentnest/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService implements NotificationService over Firebase Cloud
// Messaging.
type FCMNotificationService struct {
	Client *messaging.Client
	Logger *zap.Logger
}

// NewFCMNotificationService wraps an initialized messaging client.
func NewFCMNotificationService(client *messaging.Client, logger *zap.Logger) *FCMNotificationService {
	return &FCMNotificationService{Client: client, Logger: logger}
}

// SendPush delivers a single push message to a device token.
func (s *FCMNotificationService) SendPush(ctx context.Context, msg models.PushMessage) error {
	if msg.Token == "" {
		// User has no registered device; nothing to do.
		return nil
	}

	fcmMsg := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}

	id, err := s.Client.Send(ctx, fcmMsg)
	if err != nil {
		return fmt.Errorf("fcm: failed to send push: %w", err)
	}
	s.Logger.Debug("Push sent", zap.String("messageID", id))
	return nil
}

// NotifyBookingConfirmed tells the tenant their booking went through.
func (s *FCMNotificationService) NotifyBookingConfirmed(ctx context.Context, user *models.User, booking *models.Booking) error {
	return s.SendPush(ctx, models.PushMessage{
		Token: user.FCMToken,
		Title: "Booking confirmed",
		Body:  fmt.Sprintf("Your booking is confirmed. Move-in date: %s.", booking.MoveInDate),
		Data: map[string]string{
			"type":      "booking_confirmed",
			"bookingId": booking.ID,
		},
	})
}

// NotifyEnquiry tells a landlord a new enquiry arrived.
func (s *FCMNotificationService) NotifyEnquiry(ctx context.Context, landlord *models.User, enquiry *models.Enquiry) error {
	return s.SendPush(ctx, models.PushMessage{
		Token: landlord.FCMToken,
		Title: "New enquiry",
		Body:  fmt.Sprintf("%s asked about your listing.", enquiry.Name),
		Data: map[string]string{
			"type":       "enquiry",
			"enquiryId":  enquiry.ID,
			"propertyId": enquiry.PropertyID,
		},
	})
}
