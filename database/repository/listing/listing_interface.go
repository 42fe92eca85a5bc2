package listingRepo

import (
	"context"
	"errors"

	"fundilink/models"
)

// ErrNotFound is returned when no listing matches the lookup.
var ErrNotFound = errors.New("service listing not found")

// ListingSearchCriteria defines criteria for an active-listing search.
type ListingSearchCriteria struct {
	// Categories are matched case-insensitively against the listing
	// category, as exact values or substrings.
	Categories []string
	// TitleTerm optionally also matches listings whose title contains the
	// term, regardless of category.
	TitleTerm string
}

// ListingRepository defines access to the services collection. The
// FindOrCreate upsert is the only mutating operation the assignment path
// performs on listings.
type ListingRepository interface {
	// GetByID retrieves a listing by its unique ID. Returns ErrNotFound
	// when the listing does not exist.
	GetByID(ctx context.Context, id string) (*models.ServiceListing, error)
	// SearchActive returns active listings matching the criteria.
	SearchActive(ctx context.Context, criteria ListingSearchCriteria) ([]models.ServiceListing, error)
	// FindOrCreate atomically returns the listing for (providerID,
	// category), inserting the given record when none exists. The upsert is
	// keyed on the unique (provider_id, category) index so two concurrent
	// callers always converge on a single document.
	FindOrCreate(ctx context.Context, listing *models.ServiceListing) (*models.ServiceListing, error)
	// Create inserts a new listing record.
	Create(ctx context.Context, listing *models.ServiceListing) error
	// EnsureIndexes creates the indexes the search and upsert paths rely on.
	EnsureIndexes(ctx context.Context) error
}
