package models

import "time"

// Booking status values.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
	BookingStatusRejected   = "rejected"
)

// Assignment method audit tags, recorded on every booking so the origin of the
// provider/service binding can be traced.
const (
	AssignmentUserSelected = "user-selected"
	AssignmentAutoAssigned = "auto-assigned"
	AssignmentSynthesized  = "synthesized-fallback"
)

// bookingTransitions encodes the allowed status transitions. Completed,
// cancelled and rejected are terminal.
var bookingTransitions = map[string][]string{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a committed booking record. Invariant: the referenced service
// listing's owning provider always equals ProviderID.
type Booking struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"user_id" json:"userId"`
	ProviderID       string    `bson:"provider_id" json:"providerId"`
	ServiceID        string    `bson:"service_id" json:"serviceId"`
	Category         string    `bson:"category" json:"category"`
	Area             string    `bson:"area" json:"area"`
	Address          string    `bson:"address,omitempty" json:"address,omitempty"`
	Date             string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time             string    `bson:"time" json:"time"` // "HH:MM"
	Urgent           bool      `bson:"urgent,omitempty" json:"urgent,omitempty"`
	Budget           float64   `bson:"budget,omitempty" json:"budget,omitempty"`
	Status           string    `bson:"status" json:"status"`
	AssignmentMethod string    `bson:"assignment_method" json:"assignmentMethod"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt,omitzero"`
}
