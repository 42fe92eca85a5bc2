package booking

import (
	"context"
	"errors"
	"fmt"

	"fundilink/database/repository"
	listingRepo "fundilink/database/repository/listing"
	providerRepo "fundilink/database/repository/provider"
	"fundilink/models"
)

// Resolution is the canonical outcome of assignment resolution: the single
// (provider, service) binding to commit, plus the audit tag describing how
// it was chosen.
type Resolution struct {
	ProviderID string
	ServiceID  string
	Method     string
}

// AssignmentResolver turns a booking request into a Resolution. It either
// validates an explicit client selection or auto-picks the top-ranked
// candidate, synthesizing a listing when the chosen provider has none.
type AssignmentResolver struct {
	ProviderRepo repository.ProviderRepository
	ListingRepo  repository.ListingRepository
	Synthesizer  *ServiceSynthesizer
}

// NormalizeSelection reduces the heterogeneous selectedProvider payload to a
// canonical (providerID, serviceID) pair. Fields are tried in a fixed
// precedence order: id then _id for the provider; serviceId, service._id /
// service, then mainServiceId for the listing. A serviceID equal to the
// providerID is a historical sentinel meaning "no listing, just the
// provider" and resolves to an empty serviceID.
func NormalizeSelection(sel *models.SelectedProvider) (providerID, serviceID string) {
	if sel == nil {
		return "", ""
	}
	providerID = sel.ID
	if providerID == "" {
		providerID = sel.MongoID
	}

	serviceID = sel.ServiceID
	if serviceID == "" && sel.Service != nil {
		serviceID = sel.Service.ID
	}
	if serviceID == "" {
		serviceID = sel.MainServiceID
	}
	if serviceID == providerID {
		serviceID = ""
	}
	return providerID, serviceID
}

// Resolve produces the final binding for a request. ranked is the output of
// the candidate ranker and is only consulted when the request carries no
// explicit selection.
//
// An explicit selection that fails validation fails the whole request with
// SelectionInvalid; the resolver never substitutes a different provider for
// the one the client chose.
func (r *AssignmentResolver) Resolve(ctx context.Context, req models.BookingRequest, ranked []models.MatchCandidate) (*Resolution, error) {
	if req.SelectedProvider != nil {
		return r.resolveExplicit(ctx, req)
	}
	return r.resolveAuto(ctx, req, ranked)
}

func (r *AssignmentResolver) resolveExplicit(ctx context.Context, req models.BookingRequest) (*Resolution, error) {
	providerID, serviceID := NormalizeSelection(req.SelectedProvider)
	if providerID == "" {
		return nil, &SelectionInvalidError{Field: "selectedProvider.id", Message: "no provider identifier present"}
	}

	provider, err := r.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, &SelectionInvalidError{Field: "selectedProvider.id", Message: "provider does not exist"}
		}
		return nil, fmt.Errorf("failed to load selected provider: %w", err)
	}
	if !Eligible(provider) {
		return nil, &SelectionInvalidError{
			Field:   "selectedProvider.id",
			Message: fmt.Sprintf("provider is %s, not approved", provider.Status),
		}
	}

	if serviceID != "" {
		listing, err := r.ListingRepo.GetByID(ctx, serviceID)
		if err != nil {
			if errors.Is(err, listingRepo.ErrNotFound) {
				return nil, &SelectionInvalidError{Field: "selectedProvider.serviceId", Message: "service listing does not exist"}
			}
			return nil, fmt.Errorf("failed to load selected listing: %w", err)
		}
		if listing.ProviderID != provider.ID {
			return nil, &SelectionInvalidError{
				Field:   "selectedProvider.serviceId",
				Message: "service listing belongs to a different provider",
			}
		}
		if !listing.Active {
			return nil, &SelectionInvalidError{Field: "selectedProvider.serviceId", Message: "service listing is inactive"}
		}
		return &Resolution{
			ProviderID: provider.ID,
			ServiceID:  listing.ID,
			Method:     models.AssignmentUserSelected,
		}, nil
	}

	// No usable listing reference was resolvable; synthesize one for the
	// chosen provider rather than rejecting or substituting.
	listing, err := r.Synthesizer.EnsureListing(ctx, provider, req.Category)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		ProviderID: provider.ID,
		ServiceID:  listing.ID,
		Method:     models.AssignmentSynthesized,
	}, nil
}

func (r *AssignmentResolver) resolveAuto(ctx context.Context, req models.BookingRequest, ranked []models.MatchCandidate) (*Resolution, error) {
	if len(ranked) == 0 {
		return nil, ErrNoCandidates
	}
	top := ranked[0]

	provider, err := r.ProviderRepo.GetByID(ctx, top.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load top-ranked provider: %w", err)
	}
	if !Eligible(provider) {
		// Discovery already gated this; a status change since ranking means
		// the request fails rather than silently sliding to the runner-up.
		return nil, &SelectionInvalidError{
			Field:   "providerId",
			Message: fmt.Sprintf("top-ranked provider is %s, not approved", provider.Status),
		}
	}

	serviceID := top.ServiceID
	if serviceID == "" {
		listing, err := r.Synthesizer.EnsureListing(ctx, provider, req.Category)
		if err != nil {
			return nil, err
		}
		serviceID = listing.ID
	}
	return &Resolution{
		ProviderID: provider.ID,
		ServiceID:  serviceID,
		Method:     models.AssignmentAutoAssigned,
	}, nil
}
