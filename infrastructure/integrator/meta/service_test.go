package meta

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newIntegrator(t *testing.T) (*MetaIntegrator, *mocks.MockClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	cfg := &config.Config{Meta: config.Meta{PageSize: 100}}
	return New(cfg, client), client
}

func TestToLocalStatus(t *testing.T) {
	tests := []struct {
		remote   string
		expected domain.EntityStatus
	}{
		{remote: "ACTIVE", expected: domain.EntityStatusActive},
		{remote: "PAUSED", expected: domain.EntityStatusPaused},
		{remote: "DELETED", expected: domain.EntityStatusArchived},
		{remote: "ARCHIVED", expected: domain.EntityStatusArchived},
		{remote: "IN_PROCESS", expected: domain.EntityStatusArchived},
		{remote: "", expected: domain.EntityStatusArchived},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToLocalStatus(tt.remote))
		})
	}
}

func TestAccountNode(t *testing.T) {
	assert.Equal(t, "act_123", AccountNode("123"))
	assert.Equal(t, "act_123", AccountNode("act_123"))
}

func TestMetaIntegrator_ListCampaigns(t *testing.T) {
	integrator, client := newIntegrator(t)
	conn := &domain.AccountConnection{ID: "conn-1", ExternalID: "act_1"}

	client.EXPECT().
		Get(gomock.Any(), conn, "act_1/campaigns", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.AccountConnection, _ string, params url.Values) ([]byte, error) {
			assert.Equal(t, "100", params.Get("limit"))
			return []byte(`{"data":[
				{"id":"c1","name":"Black Friday","status":"ACTIVE","daily_budget":"5000"},
				{"id":"c2","name":"Antiga","status":"DELETED","lifetime_budget":"120050"}
			],"paging":{"cursors":{"before":"a","after":"b"}}}`), nil
		})

	entities, err := integrator.ListCampaigns(context.Background(), conn)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.Equal(t, "c1", entities[0].ExternalID)
	assert.Equal(t, domain.EntityStatusActive, entities[0].Status)
	require.NotNil(t, entities[0].DailyBudget)
	assert.True(t, decimal.NewFromInt(50).Equal(*entities[0].DailyBudget))
	assert.Nil(t, entities[0].LifetimeBudget)

	assert.Equal(t, domain.EntityStatusArchived, entities[1].Status)
	require.NotNil(t, entities[1].LifetimeBudget)
	assert.True(t, decimal.RequireFromString("1200.50").Equal(*entities[1].LifetimeBudget))
}

func TestMetaIntegrator_ListAdsPropagaErro(t *testing.T) {
	integrator, client := newIntegrator(t)
	conn := &domain.AccountConnection{ID: "conn-1", ExternalID: "1"}

	client.EXPECT().
		Get(gomock.Any(), conn, "act_1/ads", gomock.Any()).
		Return(nil, domain.ErrUnauthorized)

	_, err := integrator.ListAds(context.Background(), conn)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMetaIntegrator_UpdateStatus(t *testing.T) {
	integrator, client := newIntegrator(t)
	conn := &domain.AccountConnection{ID: "conn-1", ExternalID: "act_1"}

	client.EXPECT().
		Post(gomock.Any(), conn, "c1", url.Values{"status": {"PAUSED"}}).
		Return([]byte(`{"success":true}`), nil)

	require.NoError(t, integrator.UpdateStatus(context.Background(), conn, "c1", domain.EntityStatusPaused))
}

func TestMetaIntegrator_UpdateStatusNaoConfirmado(t *testing.T) {
	integrator, client := newIntegrator(t)
	conn := &domain.AccountConnection{ID: "conn-1", ExternalID: "act_1"}

	client.EXPECT().
		Post(gomock.Any(), conn, "c1", gomock.Any()).
		Return([]byte(`{"success":false}`), nil)

	err := integrator.UpdateStatus(context.Background(), conn, "c1", domain.EntityStatusActive)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestMetaIntegrator_UpdateBudgetEmCentavos(t *testing.T) {
	integrator, client := newIntegrator(t)
	conn := &domain.AccountConnection{ID: "conn-1", ExternalID: "act_1"}

	client.EXPECT().
		Post(gomock.Any(), conn, "c1", url.Values{"lifetime_budget": {"12346"}}).
		Return([]byte(`{"success":true}`), nil)

	err := integrator.UpdateBudget(context.Background(), conn, "c1", decimal.RequireFromString("123.455"), domain.BudgetTypeLifetime)
	require.NoError(t, err)
}

func TestMetaIntegrator_ListAdAccounts(t *testing.T) {
	integrator, client := newIntegrator(t)

	client.EXPECT().
		GetWithToken(gomock.Any(), "token-1", "me/adaccounts", gomock.Any()).
		Return([]byte(`{"data":[{"id":"act_10","account_id":"10","name":"Loja A","account_status":1}]}`), nil)

	accounts, err := integrator.ListAdAccounts(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.RemoteAdAccount{{ExternalID: "act_10", Name: "Loja A"}}, accounts)
}

func TestMetaIntegrator_GetSpendInsights(t *testing.T) {
	integrator, client := newIntegrator(t)
	conn := &domain.AccountConnection{ID: "conn-1", ExternalID: "act_1"}
	date := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	client.EXPECT().
		Get(gomock.Any(), conn, "act_1/insights", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.AccountConnection, _ string, params url.Values) ([]byte, error) {
			assert.Equal(t, "campaign", params.Get("level"))
			assert.JSONEq(t, `{"since":"2024-05-10","until":"2024-05-10"}`, params.Get("time_range"))
			return []byte(`{"data":[{
				"campaign_id":"c1","spend":"100.50","impressions":"10000","clicks":"250",
				"actions":[
					{"action_type":"offsite_conversion.fb_pixel_purchase","value":"4"},
					{"action_type":"purchase","value":"5"},
					{"action_type":"view_content","value":"80"}
				]
			}]}`), nil
		})

	rows, err := integrator.GetSpendInsights(context.Background(), conn, domain.EntityTypeCampaign, date)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "c1", rows[0].ExternalID)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.InDelta(t, 100.50, rows[0].Spend, 0.001)
	assert.Equal(t, int64(10000), rows[0].Impressions)
	assert.Equal(t, int64(250), rows[0].Clicks)
	assert.Equal(t, int64(4), rows[0].Purchases)
	assert.Equal(t, int64(80), rows[0].ContentViews)
}
