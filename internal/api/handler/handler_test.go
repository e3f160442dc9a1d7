package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/api/handler/router"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/ratelimit"
	attributingmocks "github.com/vfg2006/adsync-api/internal/usecases/attributing/mocks"
	connectingmocks "github.com/vfg2006/adsync-api/internal/usecases/connecting/mocks"
	insightingmocks "github.com/vfg2006/adsync-api/internal/usecases/insighting/mocks"
	reconcilingmocks "github.com/vfg2006/adsync-api/internal/usecases/reconciling/mocks"
	syncingmocks "github.com/vfg2006/adsync-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/adsync-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

const tenantID = "tenant-1"

func clientClaims() *domain.Claims {
	return &domain.Claims{UserID: 7, TenantID: tenantID, UserRoleID: middleware.RoleClient}
}

func adminClaims() *domain.Claims {
	return &domain.Claims{UserID: 1, TenantID: tenantID, UserRoleID: middleware.RoleAdmin}
}

// serve passa a requisição pelo router com as claims já no contexto, como o AuthMiddleware faria
func serve(routes []router.Route, method, target, body string, claims *domain.Claims) *httptest.ResponseRecorder {
	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func TestBulkStatus(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		setupMock      func(m *reconcilingmocks.MockReconciler)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "pausa campanhas e devolve o resultado",
			path: "/v1/campaigns/bulk-status",
			body: `{"ids":["c1","c2"],"action":"pause"}`,
			setupMock: func(m *reconcilingmocks.MockReconciler) {
				result := domain.NewBulkResult()
				result.Updated = 1
				result.AddFailure("c2", "cannot pause campaign in status PAUSED")
				m.EXPECT().
					BulkSetStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1", "c2"}, domain.StatusActionPause).
					Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"skipped":1`,
		},
		{
			name: "adsets usam o tipo da rota",
			path: "/v1/adsets/bulk-status",
			body: `{"ids":["s1"],"action":"resume"}`,
			setupMock: func(m *reconcilingmocks.MockReconciler) {
				m.EXPECT().
					BulkSetStatus(gomock.Any(), tenantID, domain.EntityTypeAdSet, []string{"s1"}, domain.StatusActionResume).
					Return(domain.NewBulkResult(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"failures":[]`,
		},
		{
			name:           "lista vazia é recusada antes do serviço",
			path:           "/v1/ads/bulk-status",
			body:           `{"ids":[],"action":"pause"}`,
			setupMock:      func(m *reconcilingmocks.MockReconciler) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VAL_002",
		},
		{
			name:           "ação desconhecida",
			path:           "/v1/ads/bulk-status",
			body:           `{"ids":["a1"],"action":"delete"}`,
			setupMock:      func(m *reconcilingmocks.MockReconciler) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VAL_002",
		},
		{
			name:           "json inválido",
			path:           "/v1/ads/bulk-status",
			body:           `{"ids":`,
			setupMock:      func(m *reconcilingmocks.MockReconciler) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VAL_003",
		},
		{
			name: "erro de banco vira SRV_001 sem detalhes",
			path: "/v1/campaigns/bulk-status",
			body: `{"ids":["c1"],"action":"pause"}`,
			setupMock: func(m *reconcilingmocks.MockReconciler) {
				m.EXPECT().
					BulkSetStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}, domain.StatusActionPause).
					Return(nil, errors.New("pq: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "SRV_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reconciler := reconcilingmocks.NewMockReconciler(ctrl)
			tt.setupMock(reconciler)

			rec := serve(Entities(reconciler), http.MethodPost, tt.path, tt.body, clientClaims())

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestBulkBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reconciler := reconcilingmocks.NewMockReconciler(ctrl)
	reconciler.EXPECT().
		BulkSetBudget(gomock.Any(), tenantID, []string{"c1"}, gomock.Any(), domain.BudgetTypeDaily).
		DoAndReturn(func(_ context.Context, _ string, _ []string, budget decimal.Decimal, _ domain.BudgetType) (*domain.BulkResult, error) {
			assert.True(t, budget.Equal(decimal.RequireFromString("50.25")))
			result := domain.NewBulkResult()
			result.Updated = 1
			return result, nil
		})

	rec := serve(Entities(reconciler), http.MethodPost, "/v1/campaigns/bulk-budget",
		`{"ids":["c1"],"budget":"50.25","budget_type":"daily"}`, clientClaims())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":1`)

	rec = serve(Entities(reconciler), http.MethodPost, "/v1/campaigns/bulk-budget",
		`{"ids":["c1"],"budget":0,"budget_type":"daily"}`, clientClaims())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
}

func TestSyncFromPlatform(t *testing.T) {
	t.Run("cooldown responde 429 com Retry-After", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		syncer := syncingmocks.NewMockSyncer(ctrl)
		syncer.EXPECT().SyncFromPlatform(gomock.Any(), tenantID).
			Return(nil, domain.NewRateLimitError("sync_cooldown", 45*time.Second))

		rec := serve(Sync(syncer), http.MethodPost, "/v1/sync", "", clientClaims())

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "45", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "RATE_001")
		assert.Contains(t, rec.Body.String(), `"retry_after_seconds":45`)
	})

	t.Run("falhas por conta continuam 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		result := domain.NewSyncResult()
		result.Campaigns = 3
		result.AddError("Loja Centro", "credentials")

		syncer := syncingmocks.NewMockSyncer(ctrl)
		syncer.EXPECT().SyncFromPlatform(gomock.Any(), tenantID).Return(result, nil)

		rec := serve(Sync(syncer), http.MethodPost, "/v1/sync", "", clientClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"campaigns":3`)
		assert.Contains(t, rec.Body.String(), `"account_name":"Loja Centro"`)
	})

	t.Run("sem claims", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := serve(Sync(syncingmocks.NewMockSyncer(ctrl)), http.MethodPost, "/v1/sync", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestConnections(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	token := "sealed"

	t.Run("lista sem expor o token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := connectingmocks.NewMockConnector(ctrl)
		connector.EXPECT().ListConnections(gomock.Any(), tenantID).Return([]*domain.AccountConnection{
			{ID: "conn-1", TenantID: tenantID, Type: domain.ConnectionTypeAdAccount, ExternalID: "act_1", Active: true, EncryptedAccessToken: &token, CreatedAt: created},
		}, nil)

		rec := serve(Connections(connector), http.MethodGet, "/v1/connections", "", clientClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"has_token":true`)
		assert.NotContains(t, rec.Body.String(), token)
	})

	t.Run("registro devolve 201", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := connectingmocks.NewMockConnector(ctrl)
		connector.EXPECT().RegisterConnection(gomock.Any(), tenantID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req domain.RegisterConnectionRequest) (*domain.AccountConnection, error) {
				assert.Equal(t, domain.ConnectionTypePage, req.Type)
				return &domain.AccountConnection{ID: "conn-2", Type: req.Type, ExternalID: req.ExternalID, Name: req.Name, Active: true}, nil
			})

		rec := serve(Connections(connector), http.MethodPost, "/v1/connections",
			`{"type":"page","external_id":"123","name":"Página"}`, clientClaims())

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"conn-2"`)
	})

	t.Run("pai inválido vira 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := connectingmocks.NewMockConnector(ctrl)
		connector.EXPECT().RegisterConnection(gomock.Any(), tenantID, gomock.Any()).
			Return(nil, fmt.Errorf("%w: pixel requires a ad_account parent", domain.ErrInvalidParent))

		rec := serve(Connections(connector), http.MethodPost, "/v1/connections",
			`{"type":"pixel","external_id":"px","name":"Pixel"}`, clientClaims())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VAL_001")
	})

	t.Run("desativar conexão de outro tenant vira 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := connectingmocks.NewMockConnector(ctrl)
		connector.EXPECT().DisableConnection(gomock.Any(), tenantID, "conn-x").Return(domain.ErrConnectionNotFound)

		rec := serve(Connections(connector), http.MethodDelete, "/v1/connections/conn-x", "", clientClaims())

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NF_001")
	})

	t.Run("cota da conta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := connectingmocks.NewMockConnector(ctrl)
		connector.EXPECT().GetQuota(gomock.Any(), tenantID, "conn-1").
			Return(&ratelimit.Status{Key: "act_1", Limit: 200, Used: 5, Remaining: 195}, nil)

		rec := serve(Connections(connector), http.MethodGet, "/v1/connections/conn-1/quota", "", clientClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"remaining":195`)
	})

	t.Run("reset de cota exige admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := connectingmocks.NewMockConnector(ctrl)

		rec := serve(Connections(connector), http.MethodDelete, "/v1/connections/conn-1/quota", "", clientClaims())
		assert.Equal(t, http.StatusForbidden, rec.Code)

		connector.EXPECT().ResetQuota(gomock.Any(), tenantID, "conn-1").Return(nil)
		rec = serve(Connections(connector), http.MethodDelete, "/v1/connections/conn-1/quota", "", adminClaims())
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestOAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connector := connectingmocks.NewMockConnector(ctrl)
	connector.EXPECT().HandleCallback(gomock.Any(), "abc", "st", "").
		Return("https://app.example.com/connect?accounts=2&status=connected")
	connector.EXPECT().AuthorizationURL(tenantID).Return("https://www.facebook.com/dialog/oauth?state=x", nil)

	rec := serve(OAuth(connector), http.MethodGet, "/v1/oauth/meta/callback?code=abc&state=st", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.example.com/connect?accounts=2&status=connected", rec.Header().Get("Location"))

	rec = serve(OAuth(connector), http.MethodGet, "/v1/oauth/meta/url", "", clientClaims())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "facebook.com/dialog/oauth")
}

func TestGetInsights(t *testing.T) {
	t.Run("repassa filtros", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		insighter := insightingmocks.NewMockInsighter(ctrl)
		insighter.EXPECT().
			GetEntityMetrics(gomock.Any(), tenantID, domain.AttributionLevelCampaign, []string{"c1", "c2"}, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, level domain.AttributionLevel, _ []string, from, to *time.Time) (*domain.MetricsReport, error) {
				require.NotNil(t, from)
				require.Nil(t, to)
				assert.Equal(t, "2024-05-01", from.Format(time.DateOnly))

				spend := domain.SpendTotals{Spend: 100}
				attr := &domain.AttributionTotals{EntityID: "c1", Revenue: 250}
				row := domain.DeriveMetrics("c1", spend, attr)
				return &domain.MetricsReport{Level: level, Entities: []*domain.EntityMetrics{row}, Summary: row}, nil
			})

		rec := serve(Insights(insighter), http.MethodGet, "/v1/insights/campaign?ids=c1,c2&start_date=2024-05-01", "", clientClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"roas":2.5`)
	})

	t.Run("nível inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := serve(Insights(insightingmocks.NewMockInsighter(ctrl)), http.MethodGet, "/v1/insights/account", "", clientClaims())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("data mal formatada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := serve(Insights(insightingmocks.NewMockInsighter(ctrl)), http.MethodGet, "/v1/insights/ad?end_date=05/01/2024", "", clientClaims())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VAL_003")
	})
}

func TestAttribution(t *testing.T) {
	t.Run("rollup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		attributor := attributingmocks.NewMockAttributor(ctrl)
		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
		attributor.EXPECT().Rollup(gomock.Any(), tenantID, from, to).
			Return(&domain.RollupResult{TenantID: tenantID, DateFrom: "2024-05-01", DateTo: "2024-05-03", OrdersScanned: 5, CountersWritten: 3}, nil)

		rec := serve(Attribution(attributor), http.MethodPost, "/v1/attribution/rollup",
			`{"date_from":"2024-05-01","date_to":"2024-05-03"}`, clientClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"orders_scanned":5`)
	})

	t.Run("rollup com data inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := serve(Attribution(attributingmocks.NewMockAttributor(ctrl)), http.MethodPost, "/v1/attribution/rollup",
			`{"date_from":"2024-13-01","date_to":"2024-05-03"}`, clientClaims())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "date_from")
	})

	t.Run("leitura ordenada por entidade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		attributor := attributingmocks.NewMockAttributor(ctrl)
		attributor.EXPECT().ReadCounters(gomock.Any(), tenantID, domain.AttributionLevelAd, []string(nil), nil, nil).
			Return(map[string]*domain.AttributionTotals{
				"b": {EntityID: "b", Purchases: 1},
				"a": {EntityID: "a", Purchases: 2},
			}, nil)

		rec := serve(Attribution(attributor), http.MethodGet, "/v1/attribution/ad", "", clientClaims())

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Less(t, strings.Index(body, `"entity_id":"a"`), strings.Index(body, `"entity_id":"b"`))
	})
}

type fakeJob struct {
	name      string
	triggered int
	running   bool
}

func (f *fakeJob) Name() string { return f.name }

func (f *fakeJob) TriggerManualSync() bool {
	if f.running {
		return false
	}
	f.triggered++
	return true
}

func (f *fakeJob) GetStatus() map[string]any {
	return map[string]any{"running": f.running}
}

func TestJobs(t *testing.T) {
	rollup := &fakeJob{name: "attribution-rollup"}
	platform := &fakeJob{name: "platform-sync", running: true}
	jobs := NewJobs(rollup, platform)

	rec := serve(ScheduledJobs(jobs), http.MethodPost, "/v1/jobs/attribution-rollup/run", "", adminClaims())
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, rollup.triggered)

	rec = serve(ScheduledJobs(jobs), http.MethodPost, "/v1/jobs/all/run", "", adminClaims())
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"platform-sync":false`)
	assert.Equal(t, 2, rollup.triggered)

	rec = serve(ScheduledJobs(jobs), http.MethodPost, "/v1/jobs/unknown/run", "", adminClaims())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(ScheduledJobs(jobs), http.MethodGet, "/v1/jobs", "", clientClaims())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(ScheduledJobs(jobs), http.MethodGet, "/v1/jobs", "", adminClaims())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"platform-sync":{"running":true}`)
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"transição ilegal", fmt.Errorf("%w: x", domain.ErrIllegalTransition), http.StatusConflict, "STATE_001"},
		{"decifragem", domain.ErrDecryption, http.StatusUnprocessableEntity, "CRYPT_001"},
		{"credencial da plataforma", &domain.PlatformError{Err: domain.ErrUnauthorized, Code: 190, Message: "secret text"}, http.StatusUnauthorized, "AUTH_011"},
		{"plataforma fora", &domain.PlatformError{Err: domain.ErrUpstreamFailure, Code: 2, Message: "secret text"}, http.StatusBadGateway, "SRV_003"},
		{"não encontrado", domain.ErrNotFoundOrNotOwned, http.StatusNotFound, "NF_001"},
		{"desconhecido", errors.New("boom"), http.StatusInternalServerError, "SRV_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
			assert.NotContains(t, rec.Body.String(), "secret text")
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error {
	return f.err
}

func TestHealthcheck(t *testing.T) {
	rec := serve(Healthcheck(fakePinger{}), http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	rec = serve(Healthcheck(fakePinger{err: errors.New("connection refused")}), http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"down"`)
}
