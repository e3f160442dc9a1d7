package reconciling

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metamocks "github.com/vfg2006/adsync-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/adsync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

const tenantID = "tenant-1"

func stringPtr(s string) *string {
	return &s
}

func entity(id string, status domain.EntityStatus, externalID *string) *domain.AdEntity {
	return &domain.AdEntity{
		ID:           id,
		TenantID:     tenantID,
		Type:         domain.EntityTypeCampaign,
		Name:         "Campanha " + id,
		Status:       status,
		ExternalID:   externalID,
		ConnectionID: stringPtr("conn-1"),
	}
}

func activeConnection() *domain.AccountConnection {
	return &domain.AccountConnection{
		ID:                   "conn-1",
		TenantID:             tenantID,
		Type:                 domain.ConnectionTypeAdAccount,
		ExternalID:           "act_123",
		Active:               true,
		EncryptedAccessToken: stringPtr("sealed"),
	}
}

type fixture struct {
	entityRepo     *mocks.MockAdEntityRepository
	connectionRepo *mocks.MockConnectionRepository
	integrator     *metamocks.MockIntegrator
	metrics        *metrics.Metrics
	service        Reconciler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		entityRepo:     mocks.NewMockAdEntityRepository(ctrl),
		connectionRepo: mocks.NewMockConnectionRepository(ctrl),
		integrator:     metamocks.NewMockIntegrator(ctrl),
		metrics:        metrics.NewNop(),
	}
	f.service = NewService(f.entityRepo, f.connectionRepo, f.integrator, f.metrics)

	return f
}

func TestBulkSetStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		entityType  domain.EntityType
		ids         []string
		action      domain.StatusAction
		setup       func(f *fixture)
		wantErr     error
		wantUpdated int
		wantFailed  []string
	}{
		{
			name:       "Pausa entidades ativas e ignora pausadas e inexistentes",
			entityType: domain.EntityTypeCampaign,
			ids:        []string{"c1", "c2", "c3"},
			action:     domain.StatusActionPause,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().
					GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1", "c2", "c3"}).
					Return([]*domain.AdEntity{
						entity("c1", domain.EntityStatusActive, stringPtr("ext-1")),
						entity("c2", domain.EntityStatusPaused, stringPtr("ext-2")),
					}, nil)
				f.entityRepo.EXPECT().
					UpdateStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}, domain.EntityStatusPaused).
					Return(nil)
				f.connectionRepo.EXPECT().GetByID(gomock.Any(), tenantID, "conn-1").Return(activeConnection(), nil)
				f.integrator.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), "ext-1", domain.EntityStatusPaused).
					Return(nil)
			},
			wantUpdated: 1,
			wantFailed:  []string{"c2", "c3"},
		},
		{
			name:       "Ids repetidos contam uma única vez",
			entityType: domain.EntityTypeAd,
			ids:        []string{"a1", "a1", "a2"},
			action:     domain.StatusActionResume,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().
					GetByIDs(gomock.Any(), tenantID, domain.EntityTypeAd, []string{"a1", "a2"}).
					Return([]*domain.AdEntity{
						entity("a1", domain.EntityStatusPaused, nil),
						entity("a2", domain.EntityStatusPaused, nil),
					}, nil)
				f.entityRepo.EXPECT().
					UpdateStatus(gomock.Any(), tenantID, domain.EntityTypeAd, []string{"a1", "a2"}, domain.EntityStatusActive).
					Return(nil)
			},
			wantUpdated: 2,
		},
		{
			name:       "Entidade de outro tenant é tratada como inexistente",
			entityType: domain.EntityTypeCampaign,
			ids:        []string{"c1"},
			action:     domain.StatusActionPause,
			setup: func(f *fixture) {
				foreign := entity("c1", domain.EntityStatusActive, nil)
				foreign.TenantID = "tenant-2"
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}).
					Return([]*domain.AdEntity{foreign}, nil)
			},
			wantUpdated: 0,
			wantFailed:  []string{"c1"},
		},
		{
			name:       "Falha ao espelhar não desfaz a mudança local",
			entityType: domain.EntityTypeCampaign,
			ids:        []string{"c1", "c2"},
			action:     domain.StatusActionPause,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1", "c2"}).
					Return([]*domain.AdEntity{
						entity("c1", domain.EntityStatusActive, stringPtr("ext-1")),
						entity("c2", domain.EntityStatusActive, stringPtr("ext-2")),
					}, nil)
				f.entityRepo.EXPECT().
					UpdateStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1", "c2"}, domain.EntityStatusPaused).
					Return(nil)
				f.connectionRepo.EXPECT().GetByID(gomock.Any(), tenantID, "conn-1").Return(activeConnection(), nil).Times(1)
				gomock.InOrder(
					f.integrator.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), "ext-1", domain.EntityStatusPaused).
						Return(domain.ErrUpstreamFailure),
					f.integrator.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), "ext-2", domain.EntityStatusPaused).
						Return(nil),
				)
			},
			wantUpdated: 2,
		},
		{
			name:       "Conexão desativada não é espelhada",
			entityType: domain.EntityTypeCampaign,
			ids:        []string{"c1"},
			action:     domain.StatusActionPause,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}).
					Return([]*domain.AdEntity{entity("c1", domain.EntityStatusActive, stringPtr("ext-1"))}, nil)
				f.entityRepo.EXPECT().
					UpdateStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}, domain.EntityStatusPaused).
					Return(nil)
				disabled := activeConnection()
				disabled.Active = false
				f.connectionRepo.EXPECT().GetByID(gomock.Any(), tenantID, "conn-1").Return(disabled, nil)
			},
			wantUpdated: 1,
		},
		{
			name:       "Erro no banco aborta a operação",
			entityType: domain.EntityTypeCampaign,
			ids:        []string{"c1"},
			action:     domain.StatusActionPause,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}).
					Return([]*domain.AdEntity{entity("c1", domain.EntityStatusActive, stringPtr("ext-1"))}, nil)
				f.entityRepo.EXPECT().
					UpdateStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}, domain.EntityStatusPaused).
					Return(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
		{
			name:       "Lista vazia é rejeitada",
			entityType: domain.EntityTypeCampaign,
			ids:        nil,
			action:     domain.StatusActionPause,
			setup:      func(f *fixture) {},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "Ação desconhecida é rejeitada",
			entityType: domain.EntityTypeCampaign,
			ids:        []string{"c1"},
			action:     domain.StatusAction("archive"),
			setup:      func(f *fixture) {},
			wantErr:    domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result, err := f.service.BulkSetStatus(ctx, tenantID, tt.entityType, tt.ids, tt.action)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrValidation) {
					assert.ErrorIs(t, err, domain.ErrValidation)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, result.Updated)
			assert.Equal(t, len(tt.wantFailed), result.Skipped)

			failed := make([]string, 0, len(result.Failures))
			for _, failure := range result.Failures {
				failed = append(failed, failure.ID)
				assert.NotEmpty(t, failure.Reason)
			}
			assert.ElementsMatch(t, tt.wantFailed, failed)
		})
	}
}

func TestBulkSetStatus_MotivosDeFalha(t *testing.T) {
	f := newFixture(t)

	f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c2", "c3"}).
		Return([]*domain.AdEntity{entity("c2", domain.EntityStatusPaused, nil)}, nil)

	result, err := f.service.BulkSetStatus(context.Background(), tenantID, domain.EntityTypeCampaign, []string{"c2", "c3"}, domain.StatusActionPause)
	require.NoError(t, err)

	require.Len(t, result.Failures, 2)
	assert.Equal(t, "c2", result.Failures[0].ID)
	assert.Equal(t, "cannot pause campaign in status PAUSED", result.Failures[0].Reason)
	assert.Equal(t, "c3", result.Failures[1].ID)
	assert.Equal(t, "not found or not owned", result.Failures[1].Reason)
}

func TestBulkSetStatus_ContaFalhasDeEspelhamento(t *testing.T) {
	f := newFixture(t)

	f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}).
		Return([]*domain.AdEntity{entity("c1", domain.EntityStatusActive, stringPtr("ext-1"))}, nil)
	f.entityRepo.EXPECT().UpdateStatus(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}, domain.EntityStatusPaused).Return(nil)
	f.connectionRepo.EXPECT().GetByID(gomock.Any(), tenantID, "conn-1").Return(activeConnection(), nil)
	f.integrator.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), "ext-1", domain.EntityStatusPaused).Return(domain.ErrUnauthorized)

	result, err := f.service.BulkSetStatus(context.Background(), tenantID, domain.EntityTypeCampaign, []string{"c1"}, domain.StatusActionPause)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.MirrorFailures.WithLabelValues("status")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.BulkItemsTotal.WithLabelValues("status", "updated")))
}

func TestBulkSetBudget(t *testing.T) {
	ctx := context.Background()
	budget := decimal.RequireFromString("150.50")

	tests := []struct {
		name        string
		ids         []string
		budget      decimal.Decimal
		budgetType  domain.BudgetType
		setup       func(f *fixture)
		wantErr     error
		wantUpdated int
		wantFailed  []string
	}{
		{
			name:       "Altera orçamento de campanhas ativas e pausadas",
			ids:        []string{"c1", "c2", "c3"},
			budget:     budget,
			budgetType: domain.BudgetTypeDaily,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1", "c2", "c3"}).
					Return([]*domain.AdEntity{
						entity("c1", domain.EntityStatusActive, stringPtr("ext-1")),
						entity("c2", domain.EntityStatusPaused, nil),
						entity("c3", domain.EntityStatusArchived, stringPtr("ext-3")),
					}, nil)
				f.entityRepo.EXPECT().UpdateBudget(gomock.Any(), tenantID, []string{"c1", "c2"}, budget, domain.BudgetTypeDaily).Return(nil)
				f.connectionRepo.EXPECT().GetByID(gomock.Any(), tenantID, "conn-1").Return(activeConnection(), nil)
				f.integrator.EXPECT().UpdateBudget(gomock.Any(), gomock.Any(), "ext-1", budget, domain.BudgetTypeDaily).Return(nil)
			},
			wantUpdated: 2,
			wantFailed:  []string{"c3"},
		},
		{
			name:       "Nenhuma campanha elegível não grava nada",
			ids:        []string{"c9"},
			budget:     budget,
			budgetType: domain.BudgetTypeLifetime,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c9"}).
					Return([]*domain.AdEntity{}, nil)
			},
			wantUpdated: 0,
			wantFailed:  []string{"c9"},
		},
		{
			name:       "Orçamento zero é rejeitado",
			ids:        []string{"c1"},
			budget:     decimal.Zero,
			budgetType: domain.BudgetTypeDaily,
			setup:      func(f *fixture) {},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "Tipo de orçamento desconhecido é rejeitado",
			ids:        []string{"c1"},
			budget:     budget,
			budgetType: domain.BudgetType("weekly"),
			setup:      func(f *fixture) {},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "Erro ao carregar campanhas é propagado",
			ids:        []string{"c1"},
			budget:     budget,
			budgetType: domain.BudgetTypeDaily,
			setup: func(f *fixture) {
				f.entityRepo.EXPECT().GetByIDs(gomock.Any(), tenantID, domain.EntityTypeCampaign, []string{"c1"}).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result, err := f.service.BulkSetBudget(ctx, tenantID, tt.ids, tt.budget, tt.budgetType)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrValidation) {
					assert.ErrorIs(t, err, domain.ErrValidation)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, result.Updated)
			assert.Equal(t, len(tt.ids), result.Updated+result.Skipped)

			failed := make([]string, 0)
			for _, failure := range result.Failures {
				failed = append(failed, failure.ID)
			}
			assert.ElementsMatch(t, tt.wantFailed, failed)
		})
	}
}
