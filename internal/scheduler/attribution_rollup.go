package scheduler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/usecases/attributing"
	"github.com/vfg2006/adsync-api/pkg/metrics"
)

const AttributionRollupJob = "attribution-rollup"

// AttributionRollupConfig representa a configuração do rollup agendado
type AttributionRollupConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
}

// AttributionRollupService recalcula a atribuição de todos os tenants com pedidos recentes
type AttributionRollupService struct {
	*runner
	config     AttributionRollupConfig
	orderRepo  repository.OrderRepository
	attributor attributing.Attributor
}

func NewAttributionRollupService(
	orderRepo repository.OrderRepository,
	attributor attributing.Attributor,
	appConfig *config.Config,
	m *metrics.Metrics,
) *AttributionRollupService {
	rollupConfig := AttributionRollupConfig{
		CronSchedule: appConfig.RollupSchedule.CronSchedule,
		LookbackDays: appConfig.RollupSchedule.LookbackDays,
		Enabled:      appConfig.RollupSchedule.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rollupConfig.CronSchedule,
		"lookback_days": rollupConfig.LookbackDays,
		"enabled":       rollupConfig.Enabled,
	}).Info("Configuração do rollup de atribuição carregada")

	return &AttributionRollupService{
		runner:     newRunner(AttributionRollupJob, m),
		config:     rollupConfig,
		orderRepo:  orderRepo,
		attributor: attributor,
	}
}

func (s *AttributionRollupService) Name() string {
	return AttributionRollupJob
}

// Start inicia o agendador
func (s *AttributionRollupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Rollup de atribuição desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do rollup de atribuição")

	if err := s.start(ctx, s.config.CronSchedule, s.rollupAllTenants); err != nil {
		return fmt.Errorf("erro ao agendar rollup de atribuição: %w", err)
	}

	return nil
}

// rollupAllTenants recalcula a janela de lookback de cada tenant.
// Falhas de um tenant não interrompem os demais.
func (s *AttributionRollupService) rollupAllTenants(ctx context.Context) error {
	days := lastDays(s.now(), s.config.LookbackDays)
	from, to := days[0], days[len(days)-1]

	tenants, err := s.orderRepo.ListTenantsWithOrders(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("erro ao listar tenants com pedidos: %w", err)
	}

	if len(tenants) == 0 {
		logrus.Info("Nenhum tenant com pedidos no período do rollup")
		return nil
	}

	failed := 0
	for _, tenantID := range tenants {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, err := s.attributor.Rollup(ctx, tenantID, from, to)
		if err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"tenant_id": tenantID,
				"error":     err.Error(),
			}).Error("Erro no rollup de atribuição do tenant")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"counters":  result.CountersWritten,
			"skipped":   result.SkippedTags,
		}).Debug("Rollup do tenant concluído")
	}

	if failed > 0 {
		return fmt.Errorf("rollup falhou para %d de %d tenants", failed, len(tenants))
	}

	return nil
}

// TriggerManualSync inicia manualmente o rollup
func (s *AttributionRollupService) TriggerManualSync() bool {
	return s.trigger(s.rollupAllTenants)
}

// GetStatus retorna o status atual do agendador
func (s *AttributionRollupService) GetStatus() map[string]any {
	status := s.status()
	status["enabled"] = s.config.Enabled
	status["cron"] = s.config.CronSchedule
	status["lookback_days"] = s.config.LookbackDays
	return status
}
