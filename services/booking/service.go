package booking

import (
	"context"
	"fmt"

	"fundilink/models"

	"go.uber.org/zap"
)

// CreateBooking runs the full assignment pipeline. With an explicit
// selection the ranked list is irrelevant; otherwise auto-assignment uses
// the supplied ranking, rerunning discovery when none was provided.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req models.BookingRequest, ranked []models.MatchCandidate) (*models.Booking, error) {
	if field := req.MissingField(); field != "" {
		return nil, &ValidationError{Field: field, Message: "is required"}
	}

	if req.SelectedProvider == nil && ranked == nil {
		var err error
		ranked, err = s.Matcher.MatchProviders(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	res, err := s.Resolver.Resolve(ctx, req, ranked)
	if err != nil {
		return nil, err
	}

	booking, err := s.Assigner.Commit(ctx, userID, req, res)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.BookingRepo.GetByID(ctx, id)
}

// TransitionBooking applies a status transition, rejecting moves the state
// machine does not allow. The repository write is a compare-and-set on the
// current status, so concurrent transitions cannot clobber each other.
func (s *DefaultBookingService) TransitionBooking(ctx context.Context, id, to string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(booking.Status, to) {
		return nil, &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, to),
		}
	}
	if err := s.BookingRepo.UpdateStatus(ctx, id, booking.Status, to); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("booking status updated",
			zap.String("bookingId", id),
			zap.String("from", booking.Status),
			zap.String("to", to),
		)
	}
	booking.Status = to
	return booking, nil
}
