package models

import "time"

// ServiceListing is a concrete service offered by a provider. A listing is
// only usable when Active is true and its owning provider is approved.
type ServiceListing struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"providerId"`
	Category    string    `bson:"category" json:"category"`
	Title       string    `bson:"title" json:"title"`
	Price       float64   `bson:"price" json:"price"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	Active      bool      `bson:"active" json:"active"`
	Synthesized bool      `bson:"synthesized,omitempty" json:"synthesized,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt,omitzero"`
}
