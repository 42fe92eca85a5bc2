package models

import "time"

// Provider status values. Only approved providers are ever assignable.
const (
	ProviderStatusPending   = "pending"
	ProviderStatusApproved  = "approved"
	ProviderStatusSuspended = "suspended"
	ProviderStatusRejected  = "rejected"
)

// Provider represents a registered service provider. Providers are created and
// mutated by the onboarding flows; the discovery engine only reads them.
type Provider struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Status            string    `bson:"status" json:"status"`
	Skills            []string  `bson:"skills" json:"skills,omitempty"`
	ServiceAreas      []string  `bson:"serviceAreas" json:"serviceAreas,omitempty"`
	Rating            float64   `bson:"rating" json:"rating,omitempty"`
	CompletedBookings int       `bson:"completedBookings" json:"completedBookings,omitempty"`
	DefaultPrice      float64   `bson:"defaultPrice" json:"defaultPrice,omitempty"`
	DefaultDuration   int       `bson:"defaultDuration" json:"defaultDuration,omitempty"` // minutes
	FCMToken          string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ServesArea reports whether the provider covers any of the given areas.
// An empty area list means "no location filter".
func (p *Provider) ServesArea(areas []string) bool {
	if len(areas) == 0 {
		return true
	}
	for _, want := range areas {
		for _, have := range p.ServiceAreas {
			if equalFold(have, want) {
				return true
			}
		}
	}
	return false
}
