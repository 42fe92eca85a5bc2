package bookingRepo

import (
	"context"
	"errors"

	"fundilink/models"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// ErrStaleStatus is returned by UpdateStatus when the booking is no longer in
// the expected status.
var ErrStaleStatus = errors.New("booking status changed concurrently")

// BookingRepository defines access to the bookings collection. Bookings are
// created once by the assigner and mutated only through status transitions.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID. Returns ErrNotFound
	// when the booking does not exist.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus moves a booking from one status to another as a single
	// compare-and-set write. Returns ErrStaleStatus when the booking is not
	// currently in the expected status.
	UpdateStatus(ctx context.Context, id, from, to string) error
}
