package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/connecting"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

func ListConnections(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		connections, err := service.ListConnections(r.Context(), tenantID)
		if err != nil {
			writeDomainError(w, r, err, "ListConnections")
			return
		}

		response := make([]domain.ConnectionResponse, 0, len(connections))
		for _, conn := range connections {
			response = append(response, conn.ToResponse())
		}

		writeJSON(w, http.StatusOK, response)
	})
}

func RegisterConnection(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		var request domain.RegisterConnectionRequest
		if !decodeBody(w, r, &request) {
			return
		}

		conn, err := service.RegisterConnection(r.Context(), tenantID, request)
		if err != nil {
			writeDomainError(w, r, err, "RegisterConnection")
			return
		}

		writeJSON(w, http.StatusCreated, conn.ToResponse())
	})
}

func DisableConnection(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conexão é obrigatório", nil)
			return
		}

		if err := service.DisableConnection(r.Context(), tenantID, id); err != nil {
			writeDomainError(w, r, err, "DisableConnection")
			return
		}

		logrus.WithFields(logrus.Fields{
			"tenant_id":     tenantID,
			"connection_id": id,
		}).Info("Conexão desativada")

		w.WriteHeader(http.StatusNoContent)
	})
}

// GetQuota mostra o consumo da cota local de uma conta de anúncios
func GetQuota(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		status, err := service.GetQuota(r.Context(), tenantID, id)
		if err != nil {
			writeDomainError(w, r, err, "GetQuota")
			return
		}

		writeJSON(w, http.StatusOK, status)
	})
}

func ResetQuota(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.ResetQuota(r.Context(), tenantID, id); err != nil {
			writeDomainError(w, r, err, "ResetQuota")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
