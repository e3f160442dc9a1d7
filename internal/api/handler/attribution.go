package handler

import (
	"net/http"
	"sort"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/attributing"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// RunRollup recalcula a atribuição do tenant no período informado
func RunRollup(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		var request domain.RollupRequest
		if !decodeBody(w, r, &request) {
			return
		}

		from, errFrom := utils.ParseDate(request.DateFrom)
		to, errTo := utils.ParseDate(request.DateTo)
		if errFrom != nil || errTo != nil || from == nil || to == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas devem estar no formato YYYY-MM-DD", nil)
			return
		}

		result, err := service.Rollup(r.Context(), tenantID, *from, *to)
		if err != nil {
			writeDomainError(w, r, err, "RunRollup")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

type attributionResponse struct {
	Level     domain.AttributionLevel     `json:"level"`
	StartDate string                      `json:"start_date,omitempty"`
	EndDate   string                      `json:"end_date,omitempty"`
	Entities  []*domain.AttributionTotals `json:"entities"`
}

// GetAttribution lê os contadores brutos somados por entidade
func GetAttribution(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		q, ok := parseEntityQuery(w, r)
		if !ok {
			return
		}

		totals, err := service.ReadCounters(r.Context(), tenantID, q.level, q.ids, q.startDate, q.endDate)
		if err != nil {
			writeDomainError(w, r, err, "GetAttribution")
			return
		}

		response := attributionResponse{
			Level:     q.level,
			StartDate: r.URL.Query().Get("start_date"),
			EndDate:   r.URL.Query().Get("end_date"),
			Entities:  make([]*domain.AttributionTotals, 0, len(totals)),
		}
		for _, t := range totals {
			response.Entities = append(response.Entities, t)
		}
		sort.Slice(response.Entities, func(i, j int) bool {
			return response.Entities[i].EntityID < response.Entities[j].EntityID
		})

		writeJSON(w, http.StatusOK, response)
	})
}
