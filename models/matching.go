package models

// Match types, in decreasing order of trust. Synthesized entries are only
// produced during assignment, never by discovery.
const (
	MatchTypeExactService     = "exact-service"
	MatchTypeSkillBased       = "skill-based"
	MatchTypeFuzzy            = "fuzzy-match"
	MatchTypeLocationExpanded = "location-expanded"
	MatchTypeSynthesized      = "synthesized"
)

// MatchCandidate is an ephemeral discovery result: a provider, optionally
// paired with a concrete service listing, proposed for a booking request.
// An empty ServiceID means no concrete listing backs the match yet.
type MatchCandidate struct {
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"name"`
	ServiceID    string  `json:"serviceId,omitempty"`
	MatchType    string  `json:"matchType"`
	Score        float64 `json:"score"`
	Rationale    string  `json:"rationale,omitempty"`
}
