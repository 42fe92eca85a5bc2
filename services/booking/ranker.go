package booking

import (
	"sort"

	"fundilink/models"
)

// matchTypePriority orders match types for tie-breaking during dedup.
// Synthesized entries always lose ties.
var matchTypePriority = map[string]int{
	models.MatchTypeExactService:     5,
	models.MatchTypeSkillBased:       4,
	models.MatchTypeFuzzy:            3,
	models.MatchTypeLocationExpanded: 2,
	models.MatchTypeSynthesized:      1,
}

// RankCandidates merges candidate streams, deduplicates by provider keeping
// the best entry, and orders the result. It is a pure function with no I/O.
//
// Order: score descending; ties prefer a candidate backed by a concrete
// listing over a bare skill match, then provider name ascending so the
// output is deterministic.
func RankCandidates(candidates []models.MatchCandidate) []models.MatchCandidate {
	best := make(map[string]models.MatchCandidate, len(candidates))
	for _, c := range candidates {
		cur, seen := best[c.ProviderID]
		if !seen || betterCandidate(c, cur) {
			best[c.ProviderID] = c
		}
	}

	ranked := make([]models.MatchCandidate, 0, len(best))
	for _, c := range best {
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if (a.ServiceID != "") != (b.ServiceID != "") {
			return a.ServiceID != ""
		}
		if a.ProviderName != b.ProviderName {
			return a.ProviderName < b.ProviderName
		}
		return a.ProviderID < b.ProviderID
	})
	return ranked
}

// betterCandidate decides which of two entries for the same provider
// survives dedup.
func betterCandidate(a, b models.MatchCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if (a.ServiceID != "") != (b.ServiceID != "") {
		return a.ServiceID != ""
	}
	return matchTypePriority[a.MatchType] > matchTypePriority[b.MatchType]
}
