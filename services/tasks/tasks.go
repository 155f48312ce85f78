package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"rentnest/config"
	"rentnest/models"

	"github.com/hibiken/asynq"
)

const (
	TypeMoveInReminder = "reminder:movein"
	TypeEnquiryNotify  = "enquiry:notify"
)

// NewMoveInReminderTask builds a reminder task scheduled for fireAt.
func NewMoveInReminderTask(payload models.MoveInReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMoveInReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewEnquiryNotifyTask builds an immediate enquiry notification task.
func NewEnquiryNotifyTask(payload models.EnquiryNotifyPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEnquiryNotify, b), nil
}

// Scheduler enqueues background tasks. Kept as an interface so services can
// be tested without a Redis-backed queue.
type Scheduler interface {
	ScheduleMoveInReminder(payload models.MoveInReminderPayload, fireAt time.Time) error
	EnqueueEnquiryNotify(payload models.EnquiryNotifyPayload) error
}

// AsynqScheduler implements Scheduler on an asynq client.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler creates a scheduler backed by the configured task queue.
func NewAsynqScheduler() *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	return &AsynqScheduler{client: client}
}

// ScheduleMoveInReminder enqueues a reminder that fires at the given time.
func (s *AsynqScheduler) ScheduleMoveInReminder(payload models.MoveInReminderPayload, fireAt time.Time) error {
	task, opts, err := NewMoveInReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build move-in reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue move-in reminder: %w", err)
	}
	return nil
}

// EnqueueEnquiryNotify enqueues an enquiry push for immediate delivery.
func (s *AsynqScheduler) EnqueueEnquiryNotify(payload models.EnquiryNotifyPayload) error {
	task, err := NewEnquiryNotifyTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build enquiry notify task: %w", err)
	}
	if _, err := s.client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue enquiry notification: %w", err)
	}
	return nil
}
