package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mediq/config"
	"mediq/models"
	"mediq/services/notification"
	"mediq/services/tasks"

	"github.com/hibiken/asynq"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues an appointment reminder for later delivery.
// Enqueueing is best-effort: the booking flow logs a failure and moves on.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqReminderScheduler implements ReminderScheduler on the asynq queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates a scheduler backed by the reminder queue.
func NewReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

func (s *AsynqReminderScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}
		return notifSvc.SendAppointmentReminder(ctx, p)
	}
}
