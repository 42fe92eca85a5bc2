package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fundilink/database/repository"
	"fundilink/models"

	"github.com/google/uuid"
)

const defaultListingDuration = 60 // minutes

// ServiceSynthesizer creates a minimal service listing on the fly for a
// provider that is about to be bound to a booking but has no active listing
// for the requested category. It is invoked only from the assignment
// resolver, never from discovery.
type ServiceSynthesizer struct {
	ListingRepo repository.ListingRepository
}

// EnsureListing returns the provider's listing for the category, creating
// one from profile defaults when none exists. The operation is idempotent:
// it is keyed on (providerID, category) through the repository's atomic
// upsert, so concurrent requests for the same pair converge on one record.
func (s *ServiceSynthesizer) EnsureListing(ctx context.Context, provider *models.Provider, category string) (*models.ServiceListing, error) {
	category = normalizeCategory(category)

	price := provider.DefaultPrice
	duration := provider.DefaultDuration
	if duration <= 0 {
		duration = defaultListingDuration
	}

	candidate := &models.ServiceListing{
		ID:          uuid.New().String(),
		ProviderID:  provider.ID,
		Category:    category,
		Title:       synthesizedTitle(provider.Name, category),
		Price:       price,
		Duration:    duration,
		Active:      true,
		Synthesized: true,
		CreatedAt:   time.Now().UTC(),
	}

	listing, err := s.ListingRepo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize listing for provider %s: %w", provider.ID, err)
	}
	return listing, nil
}

func synthesizedTitle(providerName, category string) string {
	if len(category) > 0 {
		category = strings.ToUpper(category[:1]) + category[1:]
	}
	return fmt.Sprintf("%s by %s", category, providerName)
}
