package handler

import (
	"net/http"

	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/reconciling"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

// BulkStatus pausa ou retoma entidades do tipo informado.
// Falhas por item voltam no corpo com status 200.
func BulkStatus(service reconciling.Reconciler, entityType domain.EntityType) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		var request domain.BulkStatusRequest
		if !decodeBody(w, r, &request) {
			return
		}

		result, err := service.BulkSetStatus(r.Context(), tenantID, entityType, request.IDs, request.Action)
		if err != nil {
			writeDomainError(w, r, err, "BulkStatus")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func BulkBudget(service reconciling.Reconciler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		var request domain.BulkBudgetRequest
		if !decodeBody(w, r, &request) {
			return
		}

		if !request.Budget.IsPositive() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "budget deve ser maior que zero", map[string]string{"budget": "gt"})
			return
		}

		result, err := service.BulkSetBudget(r.Context(), tenantID, request.IDs, request.Budget, request.BudgetType)
		if err != nil {
			writeDomainError(w, r, err, "BulkBudget")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
