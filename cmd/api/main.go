package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adsync-api/infrastructure/migration"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/api"
	"github.com/vfg2006/adsync-api/internal/api/handler"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/ratelimit"
	"github.com/vfg2006/adsync-api/internal/scheduler"
	"github.com/vfg2006/adsync-api/internal/usecases/attributing"
	"github.com/vfg2006/adsync-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsync-api/internal/usecases/connecting"
	"github.com/vfg2006/adsync-api/internal/usecases/insighting"
	"github.com/vfg2006/adsync-api/internal/usecases/reconciling"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
	"github.com/vfg2006/adsync-api/pkg/log"
	"github.com/vfg2006/adsync-api/pkg/metrics"
	"github.com/vfg2006/adsync-api/pkg/vault"
)

func main() {
	changeToSourceDir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, cfg.App.Env)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	cipher, err := vault.New(cfg.Vault.Key, cfg.App.IsProduction())
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o cofre de credenciais")
	}

	pgConn := pgconn(ctx, cfg)
	defer pgConn.Close()

	limiterStore, cooldownStore, closeStores := rateLimitStores(ctx, cfg)
	defer closeStores()

	limiter := ratelimit.New(
		limiterStore,
		"platform",
		cfg.RateLimit.Calls,
		cfg.RateLimit.Window,
		ratelimit.WithRejectionCounter(appMetrics.RateLimitRejections.WithLabelValues("platform")),
	)
	cooldown := ratelimit.NewCooldown(
		cooldownStore,
		cfg.Sync.Cooldown,
		ratelimit.WithRejectionCounter(appMetrics.RateLimitRejections.WithLabelValues("sync_cooldown")),
	)

	connectionRepo := repository.NewConnectionRepository(pgConn)
	entityRepo := repository.NewAdEntityRepository(pgConn)
	spendRepo := repository.NewAdSpendRepository(pgConn)
	attributionRepo := repository.NewAttributionRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)

	metaClient := metaclient.NewClient(cfg, cipher, limiter, appMetrics)
	metaIntegrator := meta.New(cfg, metaClient)

	validator := authenticating.NewService(cfg)
	connector := connecting.NewService(cfg, connectionRepo, cipher, metaClient, metaIntegrator, limiter)
	reconciler := reconciling.NewService(entityRepo, connectionRepo, metaIntegrator, appMetrics)
	syncer := syncing.NewService(connectionRepo, entityRepo, spendRepo, metaIntegrator, cooldown)
	attributor := attributing.NewService(orderRepo, attributionRepo, appMetrics)
	insighter := insighting.NewService(spendRepo, attributionRepo)

	rollupService := scheduler.NewAttributionRollupService(orderRepo, attributor, cfg, appMetrics)
	platformSyncService := scheduler.NewPlatformSyncService(connectionRepo, syncer, cfg, appMetrics)

	if err := rollupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do rollup de atribuição")
	} else {
		logrus.Info("Agendador do rollup de atribuição iniciado")
	}

	if err := platformSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização com a plataforma")
	} else {
		logrus.Info("Agendador de sincronização com a plataforma iniciado")
	}

	httpHandler := api.NewHandler(
		cfg,
		pgConn,
		validator,
		connector,
		reconciler,
		syncer,
		attributor,
		insighter,
		handler.NewJobs(rollupService, platformSyncService),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	server := api.New(cfg, httpHandler)
	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// changeToSourceDir permite achar o .env ao rodar com go run
func changeToSourceDir() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}

// pgconn cria a conexão com o banco e aplica as migrações quando habilitado
func pgconn(ctx context.Context, cfg *config.Config) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if cfg.Database.AutoMigrate {
		migrator, err := migration.New(conn.DB)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao preparar migrações")
		}
		if err := migrator.Up(); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// rateLimitStores escolhe onde as janelas de cota e de cooldown ficam guardadas.
// Com mais de uma réplica o store precisa ser redis.
func rateLimitStores(ctx context.Context, cfg *config.Config) (ratelimit.Store, ratelimit.Store, func()) {
	if strings.ToLower(cfg.RateLimit.Store) != "redis" {
		logrus.Info("Rate limit em memória (apenas uma instância)")
		return ratelimit.NewMemoryStore(), ratelimit.NewMemoryStore(), func() {}
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Rate limit compartilhado via Redis")

	closeFn := func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com o Redis")
		}
	}

	return ratelimit.NewRedisStore(client, "adsync:ratelimit:"), ratelimit.NewRedisStore(client, "adsync:cooldown:"), closeFn
}
