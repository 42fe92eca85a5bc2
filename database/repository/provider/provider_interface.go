package providerRepo

import (
	"context"
	"errors"

	"fundilink/models"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

// ProviderSearchCriteria defines criteria for a skill-based provider search.
type ProviderSearchCriteria struct {
	// SkillTerms are matched case-insensitively as substrings against the
	// provider's skill set. At least one term must match.
	SkillTerms []string
	// Areas restricts results to providers serving any of these areas.
	// Empty means no location filter.
	Areas []string
	// Statuses restricts results by provider status.
	Statuses []string
}

// ProviderRepository defines read/write access to the providers collection.
// Providers are owned by the onboarding flows; the discovery engine only
// reads them.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID. Returns ErrNotFound
	// when the provider does not exist.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetManyByIDs retrieves all providers whose IDs are in the given set.
	GetManyByIDs(ctx context.Context, ids []string) ([]models.Provider, error)
	// SearchBySkills returns providers matching the search criteria.
	SearchBySkills(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// EnsureIndexes creates the indexes the search paths rely on.
	EnsureIndexes(ctx context.Context) error
}
