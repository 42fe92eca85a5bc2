package booking

import (
	"context"
	"encoding/json"
	"testing"

	"fundilink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(providers *fakeProviderRepo, listings *fakeListingRepo) *AssignmentResolver {
	return &AssignmentResolver{
		ProviderRepo: providers,
		ListingRepo:  listings,
		Synthesizer:  &ServiceSynthesizer{ListingRepo: listings},
	}
}

func TestNormalizeSelection_PayloadShapes(t *testing.T) {
	// Three historical client payload shapes must normalize to the same
	// canonical pair.
	payloads := []string{
		`{"id": "prov-1", "serviceId": "svc-1"}`,
		`{"_id": "prov-1", "service": {"_id": "svc-1"}}`,
		`{"id": "prov-1", "mainServiceId": "svc-1"}`,
	}
	for _, raw := range payloads {
		var sel models.SelectedProvider
		require.NoError(t, json.Unmarshal([]byte(raw), &sel), raw)

		providerID, serviceID := NormalizeSelection(&sel)
		assert.Equal(t, "prov-1", providerID, raw)
		assert.Equal(t, "svc-1", serviceID, raw)
	}
}

func TestNormalizeSelection_ServiceAsBareString(t *testing.T) {
	var sel models.SelectedProvider
	require.NoError(t, json.Unmarshal([]byte(`{"id": "prov-1", "service": "svc-1"}`), &sel))

	providerID, serviceID := NormalizeSelection(&sel)
	assert.Equal(t, "prov-1", providerID)
	assert.Equal(t, "svc-1", serviceID)
}

func TestNormalizeSelection_ProviderIDSentinel(t *testing.T) {
	// Some clients echo the provider id in the service field; that means "no
	// listing chosen", not a listing whose id collides with the provider's.
	providerID, serviceID := NormalizeSelection(&models.SelectedProvider{
		ID:        "prov-1",
		ServiceID: "prov-1",
	})
	assert.Equal(t, "prov-1", providerID)
	assert.Empty(t, serviceID)
}

func TestNormalizeSelection_Nil(t *testing.T) {
	providerID, serviceID := NormalizeSelection(nil)
	assert.Empty(t, providerID)
	assert.Empty(t, serviceID)
}

func TestResolve_ExplicitSelection(t *testing.T) {
	providers := newFakeProviderRepo(
		approvedProvider("prov-1", "Amina", nil, []string{"westlands"}),
	)
	listings := newFakeListingRepo(
		activeListing("svc-1", "prov-1", "cleaning", "Deep Cleaning"),
	)
	r := newResolver(providers, listings)

	req := discoveryRequest("cleaning", "westlands", 1)
	req.SelectedProvider = &models.SelectedProvider{ID: "prov-1", ServiceID: "svc-1"}

	res, err := r.Resolve(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", res.ProviderID)
	assert.Equal(t, "svc-1", res.ServiceID)
	assert.Equal(t, models.AssignmentUserSelected, res.Method)
}

func TestResolve_ExplicitSelectionRejections(t *testing.T) {
	suspended := approvedProvider("prov-s", "Shady", nil, []string{"westlands"})
	suspended.Status = models.ProviderStatusSuspended

	providers := newFakeProviderRepo(
		suspended,
		approvedProvider("prov-1", "Amina", nil, []string{"westlands"}),
		approvedProvider("prov-2", "Bosire", nil, []string{"westlands"}),
	)
	inactive := activeListing("svc-off", "prov-1", "cleaning", "Retired Offer")
	inactive.Active = false
	listings := newFakeListingRepo(
		activeListing("svc-1", "prov-1", "cleaning", "Deep Cleaning"),
		inactive,
	)
	r := newResolver(providers, listings)

	tests := []struct {
		name      string
		selection models.SelectedProvider
		wantField string
	}{
		{
			name:      "no provider identifier",
			selection: models.SelectedProvider{ServiceID: "svc-1"},
			wantField: "selectedProvider.id",
		},
		{
			name:      "unknown provider",
			selection: models.SelectedProvider{ID: "prov-ghost"},
			wantField: "selectedProvider.id",
		},
		{
			name:      "suspended provider",
			selection: models.SelectedProvider{ID: "prov-s"},
			wantField: "selectedProvider.id",
		},
		{
			name:      "unknown listing",
			selection: models.SelectedProvider{ID: "prov-1", ServiceID: "svc-ghost"},
			wantField: "selectedProvider.serviceId",
		},
		{
			name:      "listing owned by another provider",
			selection: models.SelectedProvider{ID: "prov-2", ServiceID: "svc-1"},
			wantField: "selectedProvider.serviceId",
		},
		{
			name:      "inactive listing",
			selection: models.SelectedProvider{ID: "prov-1", ServiceID: "svc-off"},
			wantField: "selectedProvider.serviceId",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := discoveryRequest("cleaning", "westlands", 1)
			sel := tt.selection
			req.SelectedProvider = &sel

			_, err := r.Resolve(context.Background(), req, nil)
			var selErr *SelectionInvalidError
			require.ErrorAs(t, err, &selErr)
			assert.Equal(t, tt.wantField, selErr.Field)
		})
	}
}

func TestResolve_ExplicitSelectionWithoutListingSynthesizes(t *testing.T) {
	providers := newFakeProviderRepo(
		approvedProvider("prov-1", "Amina", []string{"cleaning"}, []string{"westlands"}),
	)
	listings := newFakeListingRepo()
	r := newResolver(providers, listings)

	req := discoveryRequest("cleaning", "westlands", 1)
	req.SelectedProvider = &models.SelectedProvider{ID: "prov-1"}

	res, err := r.Resolve(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", res.ProviderID)
	assert.NotEmpty(t, res.ServiceID)
	assert.Equal(t, models.AssignmentSynthesized, res.Method)
	assert.Equal(t, 1, listings.createdCount())
}

func TestResolve_AutoPicksTopRanked(t *testing.T) {
	providers := newFakeProviderRepo(
		approvedProvider("prov-1", "Amina", nil, []string{"westlands"}),
		approvedProvider("prov-2", "Bosire", nil, []string{"westlands"}),
	)
	listings := newFakeListingRepo(
		activeListing("svc-1", "prov-1", "cleaning", "Deep Cleaning"),
	)
	r := newResolver(providers, listings)

	ranked := []models.MatchCandidate{
		{ProviderID: "prov-1", ProviderName: "Amina", ServiceID: "svc-1", MatchType: models.MatchTypeExactService, Score: 100},
		{ProviderID: "prov-2", ProviderName: "Bosire", MatchType: models.MatchTypeSkillBased, Score: 80},
	}

	res, err := r.Resolve(context.Background(), discoveryRequest("cleaning", "westlands", 1), ranked)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", res.ProviderID)
	assert.Equal(t, "svc-1", res.ServiceID)
	assert.Equal(t, models.AssignmentAutoAssigned, res.Method)
}

func TestResolve_AutoSynthesizesForSkillOnlyWinner(t *testing.T) {
	// The winner came from the skill path and carries no listing; the
	// resolver must synthesize one and still tag the booking auto-assigned.
	providers := newFakeProviderRepo(
		approvedProvider("prov-2", "Bosire", []string{"wiring"}, []string{"westlands"}),
	)
	listings := newFakeListingRepo()
	r := newResolver(providers, listings)

	ranked := []models.MatchCandidate{
		{ProviderID: "prov-2", ProviderName: "Bosire", MatchType: models.MatchTypeSkillBased, Score: 80},
	}

	res, err := r.Resolve(context.Background(), discoveryRequest("electrical", "westlands", 1), ranked)
	require.NoError(t, err)
	assert.Equal(t, "prov-2", res.ProviderID)
	assert.NotEmpty(t, res.ServiceID)
	assert.Equal(t, models.AssignmentAutoAssigned, res.Method)
	assert.Equal(t, 1, listings.createdCount())
}

func TestResolve_AutoWithNoCandidates(t *testing.T) {
	r := newResolver(newFakeProviderRepo(), newFakeListingRepo())

	_, err := r.Resolve(context.Background(), discoveryRequest("cleaning", "westlands", 1), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestResolve_AutoRejectsProviderSuspendedSinceRanking(t *testing.T) {
	suspended := approvedProvider("prov-1", "Amina", nil, []string{"westlands"})
	suspended.Status = models.ProviderStatusSuspended
	providers := newFakeProviderRepo(suspended)
	r := newResolver(providers, newFakeListingRepo(
		activeListing("svc-1", "prov-1", "cleaning", "Deep Cleaning"),
	))

	ranked := []models.MatchCandidate{
		{ProviderID: "prov-1", ProviderName: "Amina", ServiceID: "svc-1", MatchType: models.MatchTypeExactService, Score: 100},
	}

	_, err := r.Resolve(context.Background(), discoveryRequest("cleaning", "westlands", 1), ranked)
	var selErr *SelectionInvalidError
	require.ErrorAs(t, err, &selErr)
}
