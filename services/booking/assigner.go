package booking

import (
	"context"
	"fmt"
	"time"

	"fundilink/database/repository"
	"fundilink/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingNotifier dispatches a post-commit notification. Implementations
// must be fire-and-forget; the booking path never waits on delivery.
type BookingNotifier interface {
	NotifyBookingCreated(booking *models.Booking)
}

// BookingAssigner commits the resolved (provider, service) binding into a
// booking record. This is the single point where the binding becomes
// durable.
type BookingAssigner struct {
	BookingRepo repository.BookingRepository
	ListingRepo repository.ListingRepository
	Notifier    BookingNotifier
	Logger      *zap.Logger
}

// Commit re-verifies the listing ownership invariant as a last defensive
// check, persists the booking in the pending state with its assignment
// audit tag, and triggers the downstream notification without awaiting it.
func (a *BookingAssigner) Commit(ctx context.Context, userID string, req models.BookingRequest, res *Resolution) (*models.Booking, error) {
	// Read-after-write from the same store the synthesizer wrote to: the
	// listing must exist and belong to the resolved provider.
	listing, err := a.ListingRepo.GetByID(ctx, res.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("pre-commit listing check failed: %w", err)
	}
	if listing.ProviderID != res.ProviderID {
		return nil, fmt.Errorf("refusing to commit booking: listing %s belongs to provider %s, not %s",
			listing.ID, listing.ProviderID, res.ProviderID)
	}

	booking := &models.Booking{
		ID:               uuid.New().String(),
		UserID:           userID,
		ProviderID:       res.ProviderID,
		ServiceID:        res.ServiceID,
		Category:         normalizeCategory(req.Category),
		Area:             req.Location.Area,
		Address:          req.Location.Address,
		Date:             req.Schedule.Date,
		Time:             req.Schedule.Time,
		Urgent:           req.Urgent,
		Budget:           req.Budget,
		Status:           models.BookingStatusPending,
		AssignmentMethod: res.Method,
		CreatedAt:        time.Now().UTC(),
	}

	if err := a.BookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if a.Logger != nil {
		a.Logger.Info("booking committed",
			zap.String("bookingId", booking.ID),
			zap.String("providerId", booking.ProviderID),
			zap.String("serviceId", booking.ServiceID),
			zap.String("assignmentMethod", booking.AssignmentMethod),
		)
	}

	if a.Notifier != nil {
		a.Notifier.NotifyBookingCreated(booking)
	}
	return booking, nil
}
