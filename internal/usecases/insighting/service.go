package insighting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Insighter junta gasto e atribuição e calcula as métricas de funil
type Insighter interface {
	// GetEntityMetrics retorna uma linha por entidade e o resumo do conjunto.
	// Sem ids, considera todas as entidades do nível que tenham dados no período.
	GetEntityMetrics(ctx context.Context, tenantID string, level domain.AttributionLevel, entityIDs []string, from, to *time.Time) (*domain.MetricsReport, error)
}

type Service struct {
	spendRepo       repository.AdSpendRepository
	attributionRepo repository.AttributionRepository
}

func NewService(spendRepo repository.AdSpendRepository, attributionRepo repository.AttributionRepository) Insighter {
	return &Service{
		spendRepo:       spendRepo,
		attributionRepo: attributionRepo,
	}
}

func (s *Service) GetEntityMetrics(ctx context.Context, tenantID string, level domain.AttributionLevel, entityIDs []string, from, to *time.Time) (*domain.MetricsReport, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}
	if !level.IsValid() {
		return nil, domain.NewValidationError("level", "must be campaign, adset or ad")
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.NewValidationError("start_date", "must not be after end_date")
	}

	var (
		spend       map[string]*domain.SpendTotals
		attribution map[string]*domain.AttributionTotals
		spendErr    error
		attrErr     error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		spend, spendErr = s.spendRepo.SumByEntities(ctx, tenantID, level.EntityType(), entityIDs, from, to)
	}()

	go func() {
		defer wg.Done()
		attribution, attrErr = s.attributionRepo.SumByEntities(ctx, tenantID, level, entityIDs, from, to)
	}()

	wg.Wait()

	if spendErr != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"level":     level,
			"error":     spendErr.Error(),
		}).Error("insights: failed to read spend counters")
		return nil, spendErr
	}

	if attrErr != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"level":     level,
			"error":     attrErr.Error(),
		}).Error("insights: failed to read attribution counters")
		return nil, attrErr
	}

	ids := entityIDs
	if len(ids) == 0 {
		ids = collectIDs(spend, attribution)
	}

	entities := make([]*domain.EntityMetrics, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		var totals domain.SpendTotals
		if row, ok := spend[id]; ok && row != nil {
			totals = *row
		}

		entities = append(entities, domain.DeriveMetrics(id, totals, attribution[id]))
	}

	return &domain.MetricsReport{
		Level:     level,
		StartDate: formatDate(from),
		EndDate:   formatDate(to),
		Entities:  entities,
		Summary:   domain.Summarize(entities),
	}, nil
}

// collectIDs une os ids presentes em qualquer uma das fontes, em ordem
func collectIDs(spend map[string]*domain.SpendTotals, attribution map[string]*domain.AttributionTotals) []string {
	set := make(map[string]struct{}, len(spend)+len(attribution))
	for id := range spend {
		set[id] = struct{}{}
	}
	for id := range attribution {
		set[id] = struct{}{}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
