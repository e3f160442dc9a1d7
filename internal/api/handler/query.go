package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/utils"
)

// entityQuery são os filtros comuns das leituras de contadores e métricas
type entityQuery struct {
	level     domain.AttributionLevel
	ids       []string
	startDate *time.Time
	endDate   *time.Time
}

func parseEntityQuery(w http.ResponseWriter, r *http.Request) (*entityQuery, bool) {
	level := domain.AttributionLevel(httprouter.ParamsFromContext(r.Context()).ByName("level"))
	if !level.IsValid() {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "level deve ser campaign, adset ou ad", map[string]string{"level": string(level)})
		return nil, false
	}

	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato YYYY-MM-DD", nil)
		return nil, false
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato YYYY-MM-DD", nil)
		return nil, false
	}

	return &entityQuery{
		level:     level,
		ids:       utils.SplitList(query.Get("ids")),
		startDate: startDate,
		endDate:   endDate,
	}, true
}
