package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/pkg/metrics"
)

// Job é o contrato usado pela API para disparar e consultar os agendamentos
type Job interface {
	Name() string
	// TriggerManualSync dispara uma execução em segundo plano; retorna false se já houver uma em andamento
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// runner concentra o controle de execução compartilhado pelos jobs
type runner struct {
	name      string
	scheduler *gocron.Scheduler
	metrics   *metrics.Metrics
	now       func() time.Time

	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncStatus      string
}

func newRunner(name string, m *metrics.Metrics) *runner {
	if m == nil {
		m = metrics.NewNop()
	}

	return &runner{
		name:      name,
		scheduler: gocron.NewScheduler(time.Local),
		metrics:   m,
		now:       time.Now,
		baseCtx:   context.Background(),
	}
}

// start agenda a função no cron e para o agendador quando o contexto terminar
func (r *runner) start(ctx context.Context, cron string, job func(ctx context.Context) error) error {
	r.syncMutex.Lock()
	r.baseCtx = ctx
	r.syncMutex.Unlock()

	if _, err := r.scheduler.Cron(cron).Do(func() {
		r.execute(ctx, job)
	}); err != nil {
		return err
	}

	r.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.WithField("job", r.name).Info("Parando agendador")
		r.scheduler.Stop()
	}()

	return nil
}

// execute roda o job se nenhuma outra execução estiver em andamento
func (r *runner) execute(ctx context.Context, job func(ctx context.Context) error) bool {
	if !r.acquire() {
		logrus.WithField("job", r.name).Info("Execução já em andamento, ignorando")
		return false
	}

	r.run(ctx, job)
	return true
}

func (r *runner) acquire() bool {
	r.syncMutex.Lock()
	defer r.syncMutex.Unlock()

	if r.syncRunning {
		return false
	}
	r.syncRunning = true
	r.lastSyncStartedAt = r.now()
	return true
}

func (r *runner) run(ctx context.Context, job func(ctx context.Context) error) {
	started := r.now()
	status := "success"

	err := job(ctx)
	if err != nil {
		status = "error"
		logrus.WithFields(logrus.Fields{
			"job":   r.name,
			"error": err.Error(),
		}).Error("Execução agendada falhou")
	}

	duration := r.now().Sub(started)
	r.metrics.RecordJob(r.name, status, duration)

	r.syncMutex.Lock()
	r.syncRunning = false
	r.lastSyncCompletedAt = r.now()
	r.lastSyncStatus = status
	r.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"job":      r.name,
		"status":   status,
		"duration": duration.String(),
	}).Info("Execução concluída")
}

// trigger dispara o job em segundo plano usando o contexto do agendador
func (r *runner) trigger(job func(ctx context.Context) error) bool {
	if !r.acquire() {
		logrus.WithField("job", r.name).Info("Execução já em andamento, ignorando solicitação manual")
		return false
	}

	r.syncMutex.Lock()
	ctx := r.baseCtx
	r.syncMutex.Unlock()

	logrus.WithField("job", r.name).Info("Iniciando execução manual")
	go r.run(ctx, job)
	return true
}

func (r *runner) status() map[string]any {
	r.syncMutex.Lock()
	defer r.syncMutex.Unlock()

	return map[string]any{
		"running":                r.syncRunning,
		"last_sync_started_at":   r.lastSyncStartedAt,
		"last_sync_completed_at": r.lastSyncCompletedAt,
		"last_sync_status":       r.lastSyncStatus,
	}
}

// lastDays retorna os dias UTC [hoje-n, hoje-1], do mais antigo para o mais recente
func lastDays(now time.Time, n int) []time.Time {
	if n <= 0 {
		n = 1
	}

	today := now.UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]time.Time, 0, n)
	for i := n; i >= 1; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}
