package booking

import (
	"context"
	"sync"
	"testing"

	"fundilink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	bookings []*models.Booking
}

func (n *recordingNotifier) NotifyBookingCreated(booking *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bookings = append(n.bookings, booking)
}

func (n *recordingNotifier) notified() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.bookings)
}

func TestCommit_PersistsPendingBookingWithAuditTag(t *testing.T) {
	bookings := newFakeBookingRepo()
	listings := newFakeListingRepo(
		activeListing("svc-1", "prov-1", "cleaning", "Deep Cleaning"),
	)
	notifier := &recordingNotifier{}
	a := &BookingAssigner{BookingRepo: bookings, ListingRepo: listings, Notifier: notifier}

	req := discoveryRequest("Cleaning", "westlands", 1)
	req.Location.Address = "12 Peponi Rd"
	req.Urgent = true
	req.Budget = 3000

	booking, err := a.Commit(context.Background(), "user-9", req, &Resolution{
		ProviderID: "prov-1",
		ServiceID:  "svc-1",
		Method:     models.AssignmentUserSelected,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-9", booking.UserID)
	assert.Equal(t, "prov-1", booking.ProviderID)
	assert.Equal(t, "svc-1", booking.ServiceID)
	assert.Equal(t, "cleaning", booking.Category)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.AssignmentUserSelected, booking.AssignmentMethod)
	assert.False(t, booking.CreatedAt.IsZero())

	stored, err := bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, stored.ID)
	assert.Equal(t, 1, notifier.notified())
}

func TestCommit_RefusesListingOwnedByAnotherProvider(t *testing.T) {
	bookings := newFakeBookingRepo()
	listings := newFakeListingRepo(
		activeListing("svc-1", "prov-other", "cleaning", "Deep Cleaning"),
	)
	a := &BookingAssigner{BookingRepo: bookings, ListingRepo: listings}

	_, err := a.Commit(context.Background(), "user-9", discoveryRequest("cleaning", "westlands", 1), &Resolution{
		ProviderID: "prov-1",
		ServiceID:  "svc-1",
		Method:     models.AssignmentAutoAssigned,
	})
	require.Error(t, err)
	assert.Equal(t, 0, bookings.count(), "no booking may be written when the binding is inconsistent")
}

func TestCommit_FailsWhenListingMissing(t *testing.T) {
	bookings := newFakeBookingRepo()
	a := &BookingAssigner{BookingRepo: bookings, ListingRepo: newFakeListingRepo()}

	_, err := a.Commit(context.Background(), "user-9", discoveryRequest("cleaning", "westlands", 1), &Resolution{
		ProviderID: "prov-1",
		ServiceID:  "svc-gone",
		Method:     models.AssignmentAutoAssigned,
	})
	require.Error(t, err)
	assert.Equal(t, 0, bookings.count())
}
