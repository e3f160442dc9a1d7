package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
	"github.com/vfg2006/adsync-api/pkg/metrics"
	"golang.org/x/time/rate"
)

const PlatformSyncJob = "platform-sync"

// PlatformSyncConfig representa a configuração da sincronização agendada
type PlatformSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SpendLookbackDays   int
	Enabled             bool
}

// PlatformSyncService traz estado e gasto da plataforma para todos os tenants conectados
type PlatformSyncService struct {
	*runner
	config         PlatformSyncConfig
	connectionRepo repository.ConnectionRepository
	syncer         syncing.Syncer
	pacer          *rate.Limiter
}

func NewPlatformSyncService(
	connectionRepo repository.ConnectionRepository,
	syncer syncing.Syncer,
	appConfig *config.Config,
	m *metrics.Metrics,
) *PlatformSyncService {
	syncConfig := PlatformSyncConfig{
		CronSchedule:        appConfig.PlatformSyncSchedule.CronSchedule,
		RequestDelaySeconds: appConfig.PlatformSyncSchedule.RequestDelaySeconds,
		SpendLookbackDays:   appConfig.PlatformSyncSchedule.SpendLookbackDays,
		Enabled:             appConfig.PlatformSyncSchedule.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"spend_lookback_days":   syncConfig.SpendLookbackDays,
		"enabled":               syncConfig.Enabled,
	}).Info("Configuração da sincronização com a plataforma carregada")

	return &PlatformSyncService{
		runner:         newRunner(PlatformSyncJob, m),
		config:         syncConfig,
		connectionRepo: connectionRepo,
		syncer:         syncer,
		pacer:          newPacer(syncConfig.RequestDelaySeconds),
	}
}

// newPacer espaça os tenants para não concentrar chamadas na plataforma
func newPacer(delaySeconds int) *rate.Limiter {
	if delaySeconds <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Duration(delaySeconds)*time.Second), 1)
}

func (s *PlatformSyncService) Name() string {
	return PlatformSyncJob
}

// Start inicia o agendador
func (s *PlatformSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização com a plataforma desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização com a plataforma")

	if err := s.start(ctx, s.config.CronSchedule, s.syncAllTenants); err != nil {
		return fmt.Errorf("erro ao agendar sincronização com a plataforma: %w", err)
	}

	return nil
}

func (s *PlatformSyncService) syncAllTenants(ctx context.Context) error {
	tenants, err := s.connectionRepo.ListTenantsWithActiveAdAccounts(ctx)
	if err != nil {
		return fmt.Errorf("erro ao listar tenants conectados: %w", err)
	}

	if len(tenants) == 0 {
		logrus.Info("Nenhum tenant com conta de anúncios ativa para sincronizar")
		return nil
	}

	days := lastDays(s.now(), s.config.SpendLookbackDays)
	failed := 0

	for _, tenantID := range tenants {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}

		if err := s.syncTenant(ctx, tenantID, days); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("sincronização falhou para %d de %d tenants", failed, len(tenants))
	}

	return nil
}

// syncTenant sincroniza o estado e depois o gasto diário de um tenant.
// O cooldown do pull-sync apenas pula o estado; o gasto segue normalmente.
func (s *PlatformSyncService) syncTenant(ctx context.Context, tenantID string, days []time.Time) error {
	fields := logrus.Fields{"tenant_id": tenantID}

	result, err := s.syncer.SyncFromPlatform(ctx, tenantID)
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		logrus.WithFields(fields).Info("Sincronização de estado em cooldown, pulando")
	case err != nil:
		logrus.WithFields(fields).WithField("error", err.Error()).Error("Erro ao sincronizar estado do tenant")
		return err
	default:
		logrus.WithFields(fields).WithFields(logrus.Fields{
			"campaigns": result.Campaigns,
			"adsets":    result.AdSets,
			"ads":       result.Ads,
			"errors":    len(result.Errors),
		}).Info("Estado do tenant sincronizado")
	}

	for _, day := range days {
		spend, err := s.syncer.SyncSpend(ctx, tenantID, day)
		if err != nil {
			logrus.WithFields(fields).WithFields(logrus.Fields{
				"date":  day.Format(time.DateOnly),
				"error": err.Error(),
			}).Error("Erro ao importar gasto do tenant")
			return err
		}

		logrus.WithFields(fields).WithFields(logrus.Fields{
			"date":       day.Format(time.DateOnly),
			"spend_rows": spend.SpendRows,
		}).Debug("Gasto diário importado")
	}

	return nil
}

// TriggerManualSync inicia manualmente a sincronização de todos os tenants
func (s *PlatformSyncService) TriggerManualSync() bool {
	return s.trigger(s.syncAllTenants)
}

// GetStatus retorna o status atual do agendador
func (s *PlatformSyncService) GetStatus() map[string]any {
	status := s.status()
	status["enabled"] = s.config.Enabled
	status["cron"] = s.config.CronSchedule
	status["spend_lookback_days"] = s.config.SpendLookbackDays
	status["request_delay_s"] = s.config.RequestDelaySeconds
	return status
}
