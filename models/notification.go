package models

// BookingNotifyPayload is the queue payload for post-commit booking
// notifications.
type BookingNotifyPayload struct {
	BookingID  string `json:"bookingId"`
	UserID     string `json:"userId"`
	ProviderID string `json:"providerId"`
	Category   string `json:"category"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}
