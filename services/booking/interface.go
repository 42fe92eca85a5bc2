package booking

import (
	"context"

	"fundilink/database/repository"
	"fundilink/models"

	"go.uber.org/zap"
)

// BookingService is the assignment entry point: it resolves a booking
// request to a single provider/service binding and commits it.
type BookingService interface {
	// CreateBooking validates the request, resolves the binding (explicit
	// selection or auto-assignment over ranked, which may be a cached
	// discovery result) and commits the booking.
	CreateBooking(ctx context.Context, userID string, req models.BookingRequest, ranked []models.MatchCandidate) (*models.Booking, error)
	// GetBooking fetches a booking by ID.
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	// TransitionBooking moves a booking through its status state machine.
	TransitionBooking(ctx context.Context, id, to string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Matcher     MatchingService
	Resolver    *AssignmentResolver
	Assigner    *BookingAssigner
	BookingRepo repository.BookingRepository
	Logger      *zap.Logger
}
