package notification

import (
	"context"
	"fmt"

	"fundilink/database/repository"
	"fundilink/models"
	"fundilink/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	ProviderRepo repository.ProviderRepository
	Logger       *zap.Logger
}

func NewDefaultNotificationService(providerRepo repository.ProviderRepository, logger *zap.Logger) (*DefaultNotificationService, error) {
	if providerRepo == nil {
		return nil, fmt.Errorf("notification service initialization error: provider repository is nil")
	}
	return &DefaultNotificationService{ProviderRepo: providerRepo, Logger: logger}, nil
}

// SendBookingCreated pushes a new-booking notification to the assigned
// provider. A provider without a push token is skipped silently.
func (s *DefaultNotificationService) SendBookingCreated(ctx context.Context, payload models.BookingNotifyPayload) error {
	provider, err := s.ProviderRepo.GetByID(ctx, payload.ProviderID)
	if err != nil {
		return fmt.Errorf("SendBookingCreated: could not find provider %s: %w", payload.ProviderID, err)
	}
	if provider.FCMToken == "" {
		s.Logger.Debug("provider has no FCM token, skipping push",
			zap.String("providerId", payload.ProviderID))
		return nil
	}

	msg := &messaging.Message{
		Token: provider.FCMToken,
		Notification: &messaging.Notification{
			Title: "New booking request",
			Body: fmt.Sprintf("You have a new %s booking on %s at %s.",
				payload.Category, payload.Date, payload.Time),
		},
		Data: map[string]string{
			"type":      "booking_created",
			"bookingId": payload.BookingID,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendBookingCreated: failed to send FCM message: %w", err)
	}
	return nil
}
