package booking

import (
	"strings"

	"fundilink/config"
)

// ScoreWeights holds the per-strategy scores and the location-expansion
// penalty. The absolute values are empirical; only their relative ordering
// carries meaning, which is why they are configuration rather than constants.
type ScoreWeights struct {
	Exact       float64
	Skill       float64
	Fuzzy       float64
	TierPenalty float64
}

// MatchingConfig carries the category/keyword lookup tables and score
// weights the discovery strategies run on. It is injected into the matching
// service so deployments can tune it and tests can pin fixture maps.
type MatchingConfig struct {
	// SkillSynonyms maps a normalized category to the skill keywords the
	// skill strategy searches for.
	SkillSynonyms map[string][]string
	// NeighborCategories maps a normalized category to the broader
	// categories the fuzzy strategy searches under.
	NeighborCategories map[string][]string
	// NeighborAreas maps an area to the adjacent areas the first
	// location-expansion tier widens into.
	NeighborAreas map[string][]string
	// Weights are the strategy scores and expansion penalty.
	Weights ScoreWeights
	// MaxCandidates caps the ranked list returned to callers.
	MaxCandidates int
}

// DefaultMatchingConfig returns the stock lookup tables and weights. The
// weights can be overridden through the app config.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		SkillSynonyms: map[string][]string{
			"electrical": {"electrical", "electrician", "wiring", "lighting"},
			"plumbing":   {"plumbing", "plumber", "pipes", "drainage"},
			"cleaning":   {"cleaning", "cleaner", "housekeeping", "laundry"},
			"carpentry":  {"carpentry", "carpenter", "woodwork", "furniture"},
			"painting":   {"painting", "painter", "decorating"},
			"gardening":  {"gardening", "gardener", "landscaping", "lawn"},
		},
		NeighborCategories: map[string][]string{
			"electrical": {"maintenance", "repair", "installation"},
			"plumbing":   {"maintenance", "repair", "installation"},
			"cleaning":   {"housekeeping", "maintenance"},
			"carpentry":  {"woodwork", "repair", "installation"},
			"painting":   {"decorating", "maintenance"},
			"gardening":  {"landscaping", "maintenance"},
		},
		NeighborAreas: map[string][]string{},
		Weights: ScoreWeights{
			Exact:       100,
			Skill:       80,
			Fuzzy:       60,
			TierPenalty: 10,
		},
		MaxCandidates: 20,
	}
}

// MatchingConfigFromApp overlays the app-config score weights onto the
// default lookup tables.
func MatchingConfigFromApp(cfg config.Config) MatchingConfig {
	mc := DefaultMatchingConfig()
	if cfg.MatchExactScore > 0 {
		mc.Weights.Exact = cfg.MatchExactScore
	}
	if cfg.MatchSkillScore > 0 {
		mc.Weights.Skill = cfg.MatchSkillScore
	}
	if cfg.MatchFuzzyScore > 0 {
		mc.Weights.Fuzzy = cfg.MatchFuzzyScore
	}
	if cfg.MatchTierPenalty > 0 {
		mc.Weights.TierPenalty = cfg.MatchTierPenalty
	}
	return mc
}

// normalizeCategory canonicalizes a requested category for lookup-table and
// query use.
func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// synonymsFor returns the skill keywords for a category, falling back to the
// category itself when no synonym set is configured.
func (c MatchingConfig) synonymsFor(category string) []string {
	if syns, ok := c.SkillSynonyms[category]; ok {
		return syns
	}
	return []string{category}
}

// neighborsFor returns the fuzzy neighbor categories for a category, or nil
// when none are configured.
func (c MatchingConfig) neighborsFor(category string) []string {
	return c.NeighborCategories[category]
}

// expandedAreas returns the area filter for an expansion tier: tier 0 is the
// exact area, tier 1 adds configured neighboring areas, and the final tier
// drops the location filter entirely (nil).
func (c MatchingConfig) expandedAreas(area string, tier int) []string {
	switch tier {
	case 0:
		return []string{area}
	case 1:
		areas := []string{area}
		areas = append(areas, c.NeighborAreas[area]...)
		return areas
	default:
		return nil
	}
}

// maxExpansionTier is the widest location tier (no filter).
const maxExpansionTier = 2
