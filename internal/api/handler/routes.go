package handler

import (
	"net/http"

	"github.com/vfg2006/adsync-api/internal/api/handler/router"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/attributing"
	"github.com/vfg2006/adsync-api/internal/usecases/connecting"
	"github.com/vfg2006/adsync-api/internal/usecases/insighting"
	"github.com/vfg2006/adsync-api/internal/usecases/reconciling"
	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
	"github.com/vfg2006/adsync-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Metrics expõe o handler do Prometheus
func Metrics(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func OAuth(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/oauth/meta/url",
			Method:      http.MethodGet,
			Handler:     OAuthURL(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:    "/v1/oauth/meta/callback",
			Method:  http.MethodGet,
			Handler: OAuthCallback(service),
		},
	}
}

func Connections(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/connections",
			Method:      http.MethodGet,
			Handler:     ListConnections(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/connections",
			Method:      http.MethodPost,
			Handler:     RegisterConnection(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/connections/:id",
			Method:      http.MethodDelete,
			Handler:     DisableConnection(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/connections/:id/quota",
			Method:      http.MethodGet,
			Handler:     GetQuota(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/connections/:id/quota",
			Method:      http.MethodDelete,
			Handler:     ResetQuota(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

func Entities(service reconciling.Reconciler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/bulk-status",
			Method:      http.MethodPost,
			Handler:     BulkStatus(service, domain.EntityTypeCampaign),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/adsets/bulk-status",
			Method:      http.MethodPost,
			Handler:     BulkStatus(service, domain.EntityTypeAdSet),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ads/bulk-status",
			Method:      http.MethodPost,
			Handler:     BulkStatus(service, domain.EntityTypeAd),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/bulk-budget",
			Method:      http.MethodPost,
			Handler:     BulkBudget(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Sync(service syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync",
			Method:      http.MethodPost,
			Handler:     SyncFromPlatform(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Attribution(service attributing.Attributor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/attribution/rollup",
			Method:      http.MethodPost,
			Handler:     RunRollup(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attribution/:level",
			Method:      http.MethodGet,
			Handler:     GetAttribution(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights/:level",
			Method:      http.MethodGet,
			Handler:     GetInsights(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func ScheduledJobs(jobs Jobs) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/jobs",
			Method:      http.MethodGet,
			Handler:     GetJobsStatus(jobs),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/jobs/:type/run",
			Method:      http.MethodPost,
			Handler:     RunJob(jobs),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}
