package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"

	bookingRepo "fundilink/database/repository/booking"
	listingRepo "fundilink/database/repository/listing"
	providerRepo "fundilink/database/repository/provider"
	"fundilink/models"
)

// ==========================
// In-memory fake repositories
// ==========================

type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
}

func newFakeProviderRepo(providers ...models.Provider) *fakeProviderRepo {
	r := &fakeProviderRepo{providers: make(map[string]models.Provider)}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	return r
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %s: %w", id, providerRepo.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProviderRepo) GetManyByIDs(_ context.Context, ids []string) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Provider
	for _, id := range ids {
		if p, ok := r.providers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProviderRepo) SearchBySkills(_ context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Provider
	for _, p := range r.providers {
		if len(criteria.Statuses) > 0 && !containsFold(criteria.Statuses, p.Status) {
			continue
		}
		if len(criteria.Areas) > 0 && !anyOverlapFold(p.ServiceAreas, criteria.Areas) {
			continue
		}
		if !skillsMatch(p.Skills, criteria.SkillTerms) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.ID] = *provider
	return nil
}

func (r *fakeProviderRepo) EnsureIndexes(context.Context) error { return nil }

func skillsMatch(skills, terms []string) bool {
	for _, s := range skills {
		for _, t := range terms {
			if strings.Contains(strings.ToLower(s), strings.ToLower(t)) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func anyOverlapFold(a, b []string) bool {
	for _, x := range a {
		if containsFold(b, x) {
			return true
		}
	}
	return false
}

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]models.ServiceListing
	created  int
}

func newFakeListingRepo(listings ...models.ServiceListing) *fakeListingRepo {
	r := &fakeListingRepo{listings: make(map[string]models.ServiceListing)}
	for _, l := range listings {
		r.listings[l.ID] = l
	}
	return r
}

func (r *fakeListingRepo) GetByID(_ context.Context, id string) (*models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, listingRepo.ErrNotFound)
	}
	return &l, nil
}

func (r *fakeListingRepo) SearchActive(_ context.Context, criteria listingRepo.ListingSearchCriteria) ([]models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceListing
	for _, l := range r.listings {
		if !l.Active {
			continue
		}
		matched := false
		for _, c := range criteria.Categories {
			if strings.Contains(strings.ToLower(l.Category), strings.ToLower(c)) {
				matched = true
				break
			}
		}
		if !matched && criteria.TitleTerm != "" &&
			strings.Contains(strings.ToLower(l.Title), strings.ToLower(criteria.TitleTerm)) {
			matched = true
		}
		if matched {
			out = append(out, l)
		}
	}
	return out, nil
}

// FindOrCreate mirrors the Mongo upsert: one document per (providerID,
// category), applied atomically under the repo lock.
func (r *fakeListingRepo) FindOrCreate(_ context.Context, listing *models.ServiceListing) (*models.ServiceListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.listings {
		if l.ProviderID == listing.ProviderID && strings.EqualFold(l.Category, listing.Category) {
			l.Active = true
			r.listings[id] = l
			return &l, nil
		}
	}
	r.listings[listing.ID] = *listing
	r.created++
	stored := r.listings[listing.ID]
	return &stored, nil
}

func (r *fakeListingRepo) Create(_ context.Context, listing *models.ServiceListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ID] = *listing
	return nil
}

func (r *fakeListingRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeListingRepo) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, bookingRepo.ErrNotFound)
	}
	return &b, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, bookingRepo.ErrNotFound)
	}
	if b.Status != from {
		return fmt.Errorf("booking %s: %w", id, bookingRepo.ErrStaleStatus)
	}
	b.Status = to
	r.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// ==========================
// Fixture helpers
// ==========================

func fixtureConfig() MatchingConfig {
	cfg := DefaultMatchingConfig()
	cfg.NeighborAreas = map[string][]string{
		"westlands": {"parklands"},
	}
	return cfg
}

func approvedProvider(id, name string, skills, areas []string) models.Provider {
	return models.Provider{
		ID:           id,
		Name:         name,
		Status:       models.ProviderStatusApproved,
		Skills:       skills,
		ServiceAreas: areas,
		DefaultPrice: 1500,
	}
}

func activeListing(id, providerID, category, title string) models.ServiceListing {
	return models.ServiceListing{
		ID:         id,
		ProviderID: providerID,
		Category:   category,
		Title:      title,
		Price:      2000,
		Duration:   90,
		Active:     true,
	}
}

func discoveryRequest(category, area string, needed int) models.BookingRequest {
	return models.BookingRequest{
		Category:        category,
		Location:        models.Location{Area: area},
		Schedule:        models.Schedule{Date: "2025-07-14", Time: "10:00"},
		ProvidersNeeded: needed,
	}
}
