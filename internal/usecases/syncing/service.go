package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/ratelimit"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Syncer traz o estado da plataforma para as entidades locais
type Syncer interface {
	SyncFromPlatform(ctx context.Context, tenantID string) (*domain.SyncResult, error)
	SyncSpend(ctx context.Context, tenantID string, date time.Time) (*domain.SyncResult, error)
}

type Service struct {
	connectionRepo repository.ConnectionRepository
	entityRepo     repository.AdEntityRepository
	spendRepo      repository.AdSpendRepository
	integrator     meta.Integrator
	cooldown       ratelimit.Limiter
}

func NewService(
	connectionRepo repository.ConnectionRepository,
	entityRepo repository.AdEntityRepository,
	spendRepo repository.AdSpendRepository,
	integrator meta.Integrator,
	cooldown ratelimit.Limiter,
) Syncer {
	return &Service{
		connectionRepo: connectionRepo,
		entityRepo:     entityRepo,
		spendRepo:      spendRepo,
		integrator:     integrator,
		cooldown:       cooldown,
	}
}

// listFunc busca uma página de entidades de um nível
type listFunc func(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error)

type level struct {
	entityType domain.EntityType
	list       listFunc
}

func (s *Service) levels() []level {
	return []level{
		{entityType: domain.EntityTypeCampaign, list: s.integrator.ListCampaigns},
		{entityType: domain.EntityTypeAdSet, list: s.integrator.ListAdSets},
		{entityType: domain.EntityTypeAd, list: s.integrator.ListAds},
	}
}

func (s *Service) SyncFromPlatform(ctx context.Context, tenantID string) (*domain.SyncResult, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}

	// a janela começa agora, mesmo que a sincronização falhe
	if err := s.cooldown.CheckAndConsume(ctx, tenantID); err != nil {
		return nil, err
	}

	connections, err := s.connectionRepo.ListActiveAdAccounts(ctx, tenantID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}).Error("sync: falha ao listar contas de anúncio")
		return nil, err
	}

	result := domain.NewSyncResult()

	for _, conn := range connections {
		counts, err := s.syncAccount(ctx, tenantID, conn)
		for entityType, n := range counts {
			result.Add(entityType, n)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			logrus.WithFields(logrus.Fields{
				"tenant_id":     tenantID,
				"connection_id": conn.ID,
				"account":       conn.ExternalID,
				"error":         err.Error(),
			}).Warn("sync: falha ao sincronizar conta")
			result.AddError(accountName(conn), failureReason(err))
		}
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"accounts":  len(connections),
		"campaigns": result.Campaigns,
		"adsets":    result.AdSets,
		"ads":       result.Ads,
		"errors":    len(result.Errors),
	}).Info("sync: sincronização concluída")

	return result, nil
}

// syncAccount busca campanhas, conjuntos e anúncios nessa ordem.
// Em caso de erro devolve também o que já foi gravado nos níveis anteriores.
func (s *Service) syncAccount(ctx context.Context, tenantID string, conn *domain.AccountConnection) (map[domain.EntityType]int, error) {
	counts := make(map[domain.EntityType]int, 3)

	for _, lvl := range s.levels() {
		remote, err := lvl.list(ctx, conn)
		if err != nil {
			return counts, fmt.Errorf("list %s: %w", lvl.entityType, err)
		}

		n, err := s.merge(ctx, tenantID, lvl.entityType, remote)
		if n > 0 {
			counts[lvl.entityType] = n
		}
		if err != nil {
			return counts, fmt.Errorf("merge %s: %w", lvl.entityType, err)
		}
	}

	return counts, nil
}

// merge aplica o estado remoto às entidades locais já conhecidas. Nunca cria entidades.
func (s *Service) merge(ctx context.Context, tenantID string, entityType domain.EntityType, remote []domain.RemoteEntity) (int, error) {
	if len(remote) == 0 {
		return 0, nil
	}

	externalIDs := make([]string, 0, len(remote))
	for _, r := range remote {
		externalIDs = append(externalIDs, r.ExternalID)
	}

	local, err := s.entityRepo.FindByExternalIDs(ctx, tenantID, entityType, externalIDs)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, r := range remote {
		entity, ok := local[r.ExternalID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"tenant_id":   tenantID,
				"entity_type": entityType,
				"external_id": r.ExternalID,
			}).Debug("sync: entidade remota sem correspondente local")
			continue
		}

		if entityType != domain.EntityTypeCampaign {
			r.DailyBudget = nil
			r.LifetimeBudget = nil
		}

		if err := s.entityRepo.ApplyRemoteState(ctx, tenantID, entityType, entity.ID, r); err != nil {
			return synced, err
		}
		synced++
	}

	return synced, nil
}

// SyncSpend grava as métricas diárias de gasto de cada entidade conhecida
func (s *Service) SyncSpend(ctx context.Context, tenantID string, date time.Time) (*domain.SyncResult, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}

	day := date.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	connections, err := s.connectionRepo.ListActiveAdAccounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := domain.NewSyncResult()

	for _, conn := range connections {
		rows, err := s.syncAccountSpend(ctx, tenantID, conn, day)
		result.SpendRows += rows

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			logrus.WithFields(logrus.Fields{
				"tenant_id":     tenantID,
				"connection_id": conn.ID,
				"date":          day.Format(time.DateOnly),
				"error":         err.Error(),
			}).Warn("sync: falha ao importar gasto da conta")
			result.AddError(accountName(conn), failureReason(err))
		}
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"date":       day.Format(time.DateOnly),
		"spend_rows": result.SpendRows,
		"errors":     len(result.Errors),
	}).Info("sync: gasto diário importado")

	return result, nil
}

func (s *Service) syncAccountSpend(ctx context.Context, tenantID string, conn *domain.AccountConnection, day time.Time) (int, error) {
	written := 0

	for _, entityType := range []domain.EntityType{domain.EntityTypeCampaign, domain.EntityTypeAdSet, domain.EntityTypeAd} {
		spend, err := s.integrator.GetSpendInsights(ctx, conn, entityType, day)
		if err != nil {
			return written, fmt.Errorf("insights %s: %w", entityType, err)
		}
		if len(spend) == 0 {
			continue
		}

		externalIDs := make([]string, 0, len(spend))
		for _, row := range spend {
			externalIDs = append(externalIDs, row.ExternalID)
		}

		local, err := s.entityRepo.FindByExternalIDs(ctx, tenantID, entityType, externalIDs)
		if err != nil {
			return written, err
		}

		counters := make([]*domain.AdSpendCounter, 0, len(spend))
		for _, row := range spend {
			entity, ok := local[row.ExternalID]
			if !ok {
				continue
			}

			counters = append(counters, &domain.AdSpendCounter{
				TenantID:             tenantID,
				EntityType:           entityType,
				EntityID:             entity.ID,
				Date:                 day,
				Spend:                row.Spend,
				Impressions:          row.Impressions,
				Clicks:               row.Clicks,
				PlatformPurchases:    row.Purchases,
				PlatformContentViews: row.ContentViews,
			})
		}

		if len(counters) == 0 {
			continue
		}

		if err := s.spendRepo.Upsert(ctx, counters); err != nil {
			return written, err
		}
		written += len(counters)
	}

	return written, nil
}

func accountName(conn *domain.AccountConnection) string {
	if conn.Name != "" {
		return conn.Name
	}
	return conn.ExternalID
}
