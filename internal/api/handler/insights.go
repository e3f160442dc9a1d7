package handler

import (
	"net/http"

	"github.com/vfg2006/adsync-api/internal/usecases/insighting"
)

// GetInsights junta gasto e atribuição e devolve as métricas derivadas por entidade
func GetInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		q, ok := parseEntityQuery(w, r)
		if !ok {
			return
		}

		report, err := service.GetEntityMetrics(r.Context(), tenantID, q.level, q.ids, q.startDate, q.endDate)
		if err != nil {
			writeDomainError(w, r, err, "GetInsights")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}
