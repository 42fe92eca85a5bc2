package booking

import "fundilink/models"

// Eligible is the single eligibility gate for provider assignment: only
// approved providers are ever assignable. Every discovery strategy, the
// post-merge filter, and the assignment resolver call this predicate;
// nothing else in the engine decides eligibility. It is a pure function and
// safe from any concurrent context.
func Eligible(p *models.Provider) bool {
	return p != nil && p.Status == models.ProviderStatusApproved
}
