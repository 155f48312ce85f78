package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"rentnest/config"
	userRepo "rentnest/database/repository/user"
	"rentnest/models"
	"rentnest/services/notification"
	"rentnest/services/tasks"

	"github.com/hibiken/asynq"
)

// InitTaskWorker runs the async worker in the background. It delivers
// move-in reminders and enquiry notifications enqueued by the services.
func InitTaskWorker(notifSvc notification.NotificationService, users userRepo.UserRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMoveInReminder, handleMoveInReminder(notifSvc, users))
	mux.HandleFunc(tasks.TypeEnquiryNotify, handleEnquiryNotify(notifSvc, users))

	go func() {
		log.Println("[TaskWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[TaskWorker] worker stopped: %v", err)
		}
	}()
}

func handleMoveInReminder(notifSvc notification.NotificationService, users userRepo.UserRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.MoveInReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to parse move-in reminder payload: %w", err)
		}

		tenant, err := users.GetByID(payload.TenantID)
		if err != nil {
			return fmt.Errorf("failed to load tenant %s: %w", payload.TenantID, err)
		}

		return notifSvc.SendPush(ctx, models.PushMessage{
			Token: tenant.FCMToken,
			Title: "Move-in coming up",
			Body:  fmt.Sprintf("Your lease starts on %s. Time to pack!", payload.MoveInDate),
			Data: map[string]string{
				"type":      "movein_reminder",
				"bookingId": payload.BookingID,
			},
		})
	}
}

func handleEnquiryNotify(notifSvc notification.NotificationService, users userRepo.UserRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.EnquiryNotifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to parse enquiry notify payload: %w", err)
		}

		landlord, err := users.GetByID(payload.LandlordID)
		if err != nil {
			return fmt.Errorf("failed to load landlord %s: %w", payload.LandlordID, err)
		}

		return notifSvc.SendPush(ctx, models.PushMessage{
			Token: landlord.FCMToken,
			Title: "New enquiry",
			Body:  payload.Preview,
			Data: map[string]string{
				"type":       "enquiry",
				"enquiryId":  payload.EnquiryID,
				"propertyId": payload.PropertyID,
			},
		})
	}
}
