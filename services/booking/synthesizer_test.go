package booking

import (
	"context"
	"testing"

	"fundilink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureListing_CreatesFromProfileDefaults(t *testing.T) {
	listings := newFakeListingRepo()
	s := &ServiceSynthesizer{ListingRepo: listings}

	provider := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})
	provider.DefaultPrice = 2500
	provider.DefaultDuration = 120

	listing, err := s.EnsureListing(context.Background(), &provider, "Cleaning")
	require.NoError(t, err)

	assert.Equal(t, "prov-1", listing.ProviderID)
	assert.Equal(t, "cleaning", listing.Category)
	assert.Equal(t, "Cleaning by Amina", listing.Title)
	assert.Equal(t, 2500.0, listing.Price)
	assert.Equal(t, 120, listing.Duration)
	assert.True(t, listing.Active)
	assert.True(t, listing.Synthesized)
}

func TestEnsureListing_DefaultDurationFallback(t *testing.T) {
	listings := newFakeListingRepo()
	s := &ServiceSynthesizer{ListingRepo: listings}

	provider := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})
	provider.DefaultDuration = 0

	listing, err := s.EnsureListing(context.Background(), &provider, "cleaning")
	require.NoError(t, err)
	assert.Equal(t, defaultListingDuration, listing.Duration)
}

func TestEnsureListing_Idempotent(t *testing.T) {
	listings := newFakeListingRepo()
	s := &ServiceSynthesizer{ListingRepo: listings}

	provider := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})

	first, err := s.EnsureListing(context.Background(), &provider, "cleaning")
	require.NoError(t, err)
	second, err := s.EnsureListing(context.Background(), &provider, "cleaning")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat synthesis must return the same listing")
	assert.Equal(t, 1, listings.createdCount())
}

func TestEnsureListing_ReusesExistingListing(t *testing.T) {
	existing := activeListing("svc-1", "prov-1", "cleaning", "Deep Cleaning")
	existing.Active = false // a deactivated listing is revived, not duplicated
	listings := newFakeListingRepo(existing)
	s := &ServiceSynthesizer{ListingRepo: listings}

	provider := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})

	listing, err := s.EnsureListing(context.Background(), &provider, "cleaning")
	require.NoError(t, err)

	assert.Equal(t, "svc-1", listing.ID)
	assert.True(t, listing.Active)
	assert.Equal(t, 0, listings.createdCount())
	assert.False(t, listing.Synthesized, "an organic listing keeps its origin")
}

func TestEnsureListing_DistinctCategoriesGetDistinctListings(t *testing.T) {
	listings := newFakeListingRepo()
	s := &ServiceSynthesizer{ListingRepo: listings}

	provider := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})

	cleaning, err := s.EnsureListing(context.Background(), &provider, "cleaning")
	require.NoError(t, err)
	plumbing, err := s.EnsureListing(context.Background(), &provider, "plumbing")
	require.NoError(t, err)

	assert.NotEqual(t, cleaning.ID, plumbing.ID)
	assert.Equal(t, 2, listings.createdCount())
}

func TestEnsureListing_ConcurrentCallsConvergeOnOneRecord(t *testing.T) {
	listings := newFakeListingRepo()
	s := &ServiceSynthesizer{ListingRepo: listings}

	provider := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})

	const workers = 8
	results := make(chan *models.ServiceListing, workers)
	for i := 0; i < workers; i++ {
		go func() {
			listing, err := s.EnsureListing(context.Background(), &provider, "cleaning")
			assert.NoError(t, err)
			results <- listing
		}()
	}

	first := <-results
	for i := 1; i < workers; i++ {
		assert.Equal(t, first.ID, (<-results).ID)
	}
	assert.Equal(t, 1, listings.createdCount())
}
