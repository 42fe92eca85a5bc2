package notification

import (
	"context"

	"fundilink/models"
)

// NotificationService delivers booking notifications to providers via FCM.
// It sits downstream of the assignment engine: delivery runs on the queue
// worker and failures never reach the booking path.
type NotificationService interface {
	SendBookingCreated(ctx context.Context, payload models.BookingNotifyPayload) error
}
