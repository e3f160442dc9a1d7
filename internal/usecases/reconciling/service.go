package reconciling

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/metrics"
)

const notFoundReason = "not found or not owned"

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Reconciler aplica mudanças em lote localmente e as espelha na plataforma
type Reconciler interface {
	BulkSetStatus(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string, action domain.StatusAction) (*domain.BulkResult, error)
	BulkSetBudget(ctx context.Context, tenantID string, campaignIDs []string, budget decimal.Decimal, budgetType domain.BudgetType) (*domain.BulkResult, error)
}

type Service struct {
	entityRepo     repository.AdEntityRepository
	connectionRepo repository.ConnectionRepository
	integrator     meta.Integrator
	metrics        *metrics.Metrics
}

func NewService(
	entityRepo repository.AdEntityRepository,
	connectionRepo repository.ConnectionRepository,
	integrator meta.Integrator,
	m *metrics.Metrics,
) Reconciler {
	if m == nil {
		m = metrics.NewNop()
	}

	return &Service{
		entityRepo:     entityRepo,
		connectionRepo: connectionRepo,
		integrator:     integrator,
		metrics:        m,
	}
}

// mirrorFunc aplica a mudança de uma entidade na plataforma
type mirrorFunc func(ctx context.Context, conn *domain.AccountConnection, entity *domain.AdEntity) error

func (s *Service) BulkSetStatus(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string, action domain.StatusAction) (*domain.BulkResult, error) {
	if !entityType.IsValid() {
		return nil, domain.NewValidationError("entity_type", fmt.Sprintf("unknown entity type %q", entityType))
	}
	if !action.IsValid() {
		return nil, domain.NewValidationError("action", fmt.Sprintf("unknown action %q", action))
	}

	ids, err := normalizeIDs(tenantID, ids)
	if err != nil {
		return nil, err
	}

	entities, err := s.load(ctx, tenantID, entityType, ids)
	if err != nil {
		return nil, err
	}

	result := domain.NewBulkResult()
	targets := make([]*domain.AdEntity, 0, len(ids))
	idsByStatus := make(map[domain.EntityStatus][]string)

	for _, id := range ids {
		entity, ok := entities[id]
		if !ok {
			result.AddFailure(id, notFoundReason)
			continue
		}

		next, err := domain.NextStatus(entityType, entity.Status, action)
		if err != nil {
			result.AddFailure(id, err.Error())
			continue
		}

		entity.Status = next
		targets = append(targets, entity)
		idsByStatus[next] = append(idsByStatus[next], id)
	}

	for status, statusIDs := range idsByStatus {
		if err := s.entityRepo.UpdateStatus(ctx, tenantID, entityType, statusIDs, status); err != nil {
			logrus.WithFields(logrus.Fields{
				"tenant_id":   tenantID,
				"entity_type": entityType,
				"error":       err.Error(),
			}).Error("reconcile: falha ao atualizar status local")
			return nil, err
		}
	}

	result.Updated = len(targets)

	s.mirror(ctx, tenantID, "status", targets, func(ctx context.Context, conn *domain.AccountConnection, entity *domain.AdEntity) error {
		return s.integrator.UpdateStatus(ctx, conn, *entity.ExternalID, entity.Status)
	})

	s.metrics.RecordBulkItems("status", result.Updated, result.Skipped)

	logrus.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"entity_type": entityType,
		"action":      action,
		"updated":     result.Updated,
		"skipped":     result.Skipped,
	}).Info("reconcile: status em lote aplicado")

	return result, nil
}

func (s *Service) BulkSetBudget(ctx context.Context, tenantID string, campaignIDs []string, budget decimal.Decimal, budgetType domain.BudgetType) (*domain.BulkResult, error) {
	if !budget.IsPositive() {
		return nil, domain.NewValidationError("budget", "must be greater than zero")
	}
	if !budgetType.IsValid() {
		return nil, domain.NewValidationError("budget_type", fmt.Sprintf("unknown budget type %q", budgetType))
	}

	ids, err := normalizeIDs(tenantID, campaignIDs)
	if err != nil {
		return nil, err
	}

	entities, err := s.load(ctx, tenantID, domain.EntityTypeCampaign, ids)
	if err != nil {
		return nil, err
	}

	result := domain.NewBulkResult()
	targets := make([]*domain.AdEntity, 0, len(ids))
	targetIDs := make([]string, 0, len(ids))

	for _, id := range ids {
		entity, ok := entities[id]
		if !ok {
			result.AddFailure(id, notFoundReason)
			continue
		}

		if err := domain.CanChangeBudget(entity.Status); err != nil {
			result.AddFailure(id, err.Error())
			continue
		}

		targets = append(targets, entity)
		targetIDs = append(targetIDs, id)
	}

	if len(targetIDs) > 0 {
		if err := s.entityRepo.UpdateBudget(ctx, tenantID, targetIDs, budget, budgetType); err != nil {
			logrus.WithFields(logrus.Fields{
				"tenant_id": tenantID,
				"error":     err.Error(),
			}).Error("reconcile: falha ao atualizar orçamento local")
			return nil, err
		}
	}

	result.Updated = len(targets)

	s.mirror(ctx, tenantID, "budget", targets, func(ctx context.Context, conn *domain.AccountConnection, entity *domain.AdEntity) error {
		return s.integrator.UpdateBudget(ctx, conn, *entity.ExternalID, budget, budgetType)
	})

	s.metrics.RecordBulkItems("budget", result.Updated, result.Skipped)

	logrus.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"budget_type": budgetType,
		"updated":     result.Updated,
		"skipped":     result.Skipped,
	}).Info("reconcile: orçamento em lote aplicado")

	return result, nil
}

func (s *Service) load(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string) (map[string]*domain.AdEntity, error) {
	entities, err := s.entityRepo.GetByIDs(ctx, tenantID, entityType, ids)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id":   tenantID,
			"entity_type": entityType,
			"error":       err.Error(),
		}).Error("reconcile: falha ao carregar entidades")
		return nil, err
	}

	byID := make(map[string]*domain.AdEntity, len(entities))
	for _, entity := range entities {
		if entity.TenantID != tenantID {
			continue
		}
		byID[entity.ID] = entity
	}

	return byID, nil
}

// mirror espelha as mudanças uma a uma, na ordem da requisição.
// Falhas são registradas e ignoradas; o estado local já foi gravado.
func (s *Service) mirror(ctx context.Context, tenantID, operation string, entities []*domain.AdEntity, apply mirrorFunc) {
	connections := make(map[string]*domain.AccountConnection)

	for _, entity := range entities {
		if !entity.IsMirrored() || entity.ConnectionID == nil {
			continue
		}

		conn, err := s.resolveConnection(ctx, tenantID, *entity.ConnectionID, connections)
		if err != nil || conn == nil {
			logrus.WithFields(logrus.Fields{
				"tenant_id":     tenantID,
				"entity_id":     entity.ID,
				"connection_id": *entity.ConnectionID,
			}).Debug("reconcile: entidade sem conexão ativa, espelhamento ignorado")
			continue
		}

		if err := apply(ctx, conn, entity); err != nil {
			s.metrics.MirrorFailures.WithLabelValues(operation).Inc()
			logrus.WithFields(logrus.Fields{
				"tenant_id":   tenantID,
				"entity_id":   entity.ID,
				"external_id": *entity.ExternalID,
				"operation":   operation,
				"error":       err.Error(),
			}).Warn("reconcile: falha ao espelhar mudança na plataforma")
		}
	}
}

func (s *Service) resolveConnection(ctx context.Context, tenantID, connectionID string, cache map[string]*domain.AccountConnection) (*domain.AccountConnection, error) {
	if conn, ok := cache[connectionID]; ok {
		return conn, nil
	}

	conn, err := s.connectionRepo.GetByID(ctx, tenantID, connectionID)
	if err != nil {
		return nil, err
	}

	if conn != nil && (!conn.Active || conn.Type != domain.ConnectionTypeAdAccount || !conn.HasToken()) {
		conn = nil
	}

	cache[connectionID] = conn
	return conn, nil
}

// normalizeIDs rejeita listas vazias e remove ids repetidos mantendo a primeira ocorrência
func normalizeIDs(tenantID string, ids []string) ([]string, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "must not be empty")
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))

	for _, id := range ids {
		if id == "" {
			return nil, domain.NewValidationError("ids", "must not contain empty values")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique, nil
}
