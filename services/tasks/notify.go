package tasks

import (
	"encoding/json"
	"log"

	"fundilink/config"
	"fundilink/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingNotify = "notify:booking"

// NewBookingNotifyTask builds the queue task for a booking notification.
func NewBookingNotifyTask(payload models.BookingNotifyPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, b), nil
}

// Enqueuer implements the assigner's BookingNotifier by pushing tasks onto
// the asynq queue. Enqueue failures are logged and dropped: notification is
// fire-and-forget and never affects a committed booking.
type Enqueuer struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewEnqueuer creates an Enqueuer backed by the configured Redis queue.
func NewEnqueuer(logger *zap.Logger) *Enqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &Enqueuer{client: client, logger: logger}
}

func (e *Enqueuer) NotifyBookingCreated(booking *models.Booking) {
	task, err := NewBookingNotifyTask(models.BookingNotifyPayload{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ProviderID: booking.ProviderID,
		Category:   booking.Category,
		Date:       booking.Date,
		Time:       booking.Time,
	})
	if err != nil {
		e.logger.Error("failed to build booking notify task", zap.Error(err))
		return
	}
	if _, err := e.client.Enqueue(task); err != nil {
		e.logger.Error("failed to enqueue booking notify task",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

// Close releases the underlying queue client.
func (e *Enqueuer) Close() {
	if err := e.client.Close(); err != nil {
		log.Printf("failed to close asynq client: %v", err)
	}
}
