package handler

import (
	"net/http"

	"github.com/vfg2006/adsync-api/internal/usecases/syncing"
)

// SyncFromPlatform atualiza o estado local a partir da plataforma.
// Falhas por conta voltam em errors; o cooldown por tenant responde 429.
func SyncFromPlatform(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		result, err := service.SyncFromPlatform(r.Context(), tenantID)
		if err != nil {
			writeDomainError(w, r, err, "SyncFromPlatform")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
