package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fundilink/database/repository"
	"fundilink/models"
)

// MatchingService defines the interface for discovering candidate providers.
type MatchingService interface {
	// MatchProviders runs the discovery strategies for a request and
	// returns the ranked candidate list. No eligible candidates is an
	// empty list, not an error.
	MatchProviders(ctx context.Context, req models.BookingRequest) ([]models.MatchCandidate, error)
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	ProviderRepo repository.ProviderRepository
	ListingRepo  repository.ListingRepository
	Config       MatchingConfig
}

// providerSet records every provider observed by a strategy so the
// eligibility gate can be applied again after merging.
type providerSet struct {
	mu   sync.Mutex
	byID map[string]models.Provider
}

func newProviderSet() *providerSet {
	return &providerSet{byID: make(map[string]models.Provider)}
}

func (s *providerSet) add(providers ...models.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range providers {
		s.byID[p.ID] = p
	}
}

func (s *providerSet) get(id string) *models.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &p
}

// MatchProviders cascades through the discovery strategies: exact-service
// and skill-keyword run first (concurrently), fuzzy-category fills in when
// they fall short of the requested provider count, and the location filter
// is progressively widened as a last resort. Every stage passes through the
// shared eligibility gate, and the merged result is gated once more.
func (s *DefaultMatchingService) MatchProviders(ctx context.Context, req models.BookingRequest) ([]models.MatchCandidate, error) {
	if field := req.MissingField(); field != "" {
		return nil, &ValidationError{Field: field, Message: "is required"}
	}

	category := normalizeCategory(req.Category)
	seen := newProviderSet()

	candidates, err := s.runTier(ctx, category, req.Location.Area, 0, seen)
	if err != nil {
		return nil, err
	}

	if uniqueProviders(candidates) < req.Needed() {
		fuzzy, err := s.fuzzyMatches(ctx, category, s.Config.expandedAreas(req.Location.Area, 0), seen)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, fuzzy...)
	}

	for tier := 1; tier <= maxExpansionTier && uniqueProviders(candidates) < req.Needed(); tier++ {
		widened, err := s.runTier(ctx, category, req.Location.Area, tier, seen)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, widened...)
	}

	ranked := RankCandidates(candidates)

	// Post-merge gate: no candidate leaves discovery unless its provider is
	// still eligible.
	eligible := make([]models.MatchCandidate, 0, len(ranked))
	for _, c := range ranked {
		if Eligible(seen.get(c.ProviderID)) {
			eligible = append(eligible, c)
		}
	}
	if s.Config.MaxCandidates > 0 && len(eligible) > s.Config.MaxCandidates {
		eligible = eligible[:s.Config.MaxCandidates]
	}
	return eligible, nil
}

// runTier executes the exact-service and skill-keyword strategies for one
// location tier. The strategies perform independent reads and run
// concurrently; results are merged synchronously.
func (s *DefaultMatchingService) runTier(ctx context.Context, category, area string, tier int, seen *providerSet) ([]models.MatchCandidate, error) {
	areas := s.Config.expandedAreas(area, tier)

	type result struct {
		candidates []models.MatchCandidate
		err        error
	}
	resultsCh := make(chan result, 2)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		cands, err := s.exactServiceMatches(ctx, category, areas, tier, seen)
		resultsCh <- result{cands, err}
	}()
	go func() {
		defer wg.Done()
		cands, err := s.skillMatches(ctx, category, areas, tier, seen)
		resultsCh <- result{cands, err}
	}()
	wg.Wait()
	close(resultsCh)

	var merged []models.MatchCandidate
	for r := range resultsCh {
		if r.err != nil {
			return nil, r.err
		}
		merged = append(merged, r.candidates...)
	}
	return merged, nil
}

// exactServiceMatches finds active listings whose category matches the
// request (exact or substring) or whose title contains the category term,
// joined to their owning providers. This is the primary, highest-trust
// strategy.
func (s *DefaultMatchingService) exactServiceMatches(ctx context.Context, category string, areas []string, tier int, seen *providerSet) ([]models.MatchCandidate, error) {
	listings, err := s.ListingRepo.SearchActive(ctx, repository.ListingSearchCriteria{
		Categories: []string{category},
		TitleTerm:  category,
	})
	if err != nil {
		return nil, fmt.Errorf("exact-service search failed: %w", err)
	}
	if len(listings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(listings))
	idSeen := make(map[string]bool, len(listings))
	for _, l := range listings {
		if !idSeen[l.ProviderID] {
			idSeen[l.ProviderID] = true
			ids = append(ids, l.ProviderID)
		}
	}
	providers, err := s.ProviderRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("exact-service provider join failed: %w", err)
	}
	seen.add(providers...)

	byID := make(map[string]models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	var candidates []models.MatchCandidate
	for _, l := range listings {
		p, ok := byID[l.ProviderID]
		if !ok || !Eligible(&p) || !p.ServesArea(areas) {
			continue
		}
		candidates = append(candidates, s.tierCandidate(p, l.ID, models.MatchTypeExactService, s.Config.Weights.Exact, tier,
			fmt.Sprintf("active %q listing: %s", l.Category, l.Title)))
	}
	return candidates, nil
}

// skillMatches finds approved providers whose skill set contains any synonym
// of the requested category. These candidates carry no service listing yet;
// assignment synthesizes one if the provider is picked.
func (s *DefaultMatchingService) skillMatches(ctx context.Context, category string, areas []string, tier int, seen *providerSet) ([]models.MatchCandidate, error) {
	synonyms := s.Config.synonymsFor(category)
	providers, err := s.ProviderRepo.SearchBySkills(ctx, repository.ProviderSearchCriteria{
		SkillTerms: synonyms,
		Areas:      areas,
		Statuses:   []string{models.ProviderStatusApproved},
	})
	if err != nil {
		return nil, fmt.Errorf("skill search failed: %w", err)
	}
	seen.add(providers...)

	var candidates []models.MatchCandidate
	for _, p := range providers {
		if !Eligible(&p) || !p.ServesArea(areas) {
			continue
		}
		candidates = append(candidates, s.tierCandidate(p, "", models.MatchTypeSkillBased, s.Config.Weights.Skill, tier,
			fmt.Sprintf("skills match %s keywords", strings.Join(synonyms, "/"))))
	}
	return candidates, nil
}

// fuzzyMatches searches listings under the broader neighbor categories of
// the request. Lower precision, lower score; only consulted when the exact
// and skill strategies jointly fall short.
func (s *DefaultMatchingService) fuzzyMatches(ctx context.Context, category string, areas []string, seen *providerSet) ([]models.MatchCandidate, error) {
	neighbors := s.Config.neighborsFor(category)
	if len(neighbors) == 0 {
		return nil, nil
	}
	listings, err := s.ListingRepo.SearchActive(ctx, repository.ListingSearchCriteria{
		Categories: neighbors,
	})
	if err != nil {
		return nil, fmt.Errorf("fuzzy-category search failed: %w", err)
	}
	if len(listings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(listings))
	idSeen := make(map[string]bool, len(listings))
	for _, l := range listings {
		if !idSeen[l.ProviderID] {
			idSeen[l.ProviderID] = true
			ids = append(ids, l.ProviderID)
		}
	}
	providers, err := s.ProviderRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fuzzy-category provider join failed: %w", err)
	}
	seen.add(providers...)

	byID := make(map[string]models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	var candidates []models.MatchCandidate
	for _, l := range listings {
		p, ok := byID[l.ProviderID]
		if !ok || !Eligible(&p) || !p.ServesArea(areas) {
			continue
		}
		candidates = append(candidates, models.MatchCandidate{
			ProviderID:   p.ID,
			ProviderName: p.Name,
			ServiceID:    l.ID,
			MatchType:    models.MatchTypeFuzzy,
			Score:        s.Config.Weights.Fuzzy,
			Rationale:    fmt.Sprintf("related category %q listing: %s", l.Category, l.Title),
		})
	}
	return candidates, nil
}

// tierCandidate builds a candidate for a strategy result, applying the
// location-expansion penalty and tag when the match came from a widened
// tier.
func (s *DefaultMatchingService) tierCandidate(p models.Provider, serviceID, matchType string, baseScore float64, tier int, rationale string) models.MatchCandidate {
	score := baseScore - float64(tier)*s.Config.Weights.TierPenalty
	if tier > 0 {
		matchType = models.MatchTypeLocationExpanded
		rationale = fmt.Sprintf("%s (location widened, tier %d)", rationale, tier)
	}
	return models.MatchCandidate{
		ProviderID:   p.ID,
		ProviderName: p.Name,
		ServiceID:    serviceID,
		MatchType:    matchType,
		Score:        score,
		Rationale:    rationale,
	}
}

// uniqueProviders counts distinct providers across candidate entries.
func uniqueProviders(candidates []models.MatchCandidate) int {
	ids := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		ids[c.ProviderID] = true
	}
	return len(ids)
}
