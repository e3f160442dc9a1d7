package handler

import (
	"net/http"

	"github.com/vfg2006/adsync-api/internal/usecases/connecting"
)

// OAuthURL devolve a URL do diálogo de consentimento para o tenant do token
func OAuthURL(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenantOrReject(w, r)
		if !ok {
			return
		}

		authURL, err := service.AuthorizationURL(tenantID)
		if err != nil {
			writeDomainError(w, r, err, "OAuthURL")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"url": authURL})
	})
}

// OAuthCallback é público: o tenant vem do state cifrado, nunca do cliente.
// Qualquer resultado termina em redirecionamento para o front-end.
func OAuthCallback(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		redirectURL := service.HandleCallback(
			r.Context(),
			query.Get("code"),
			query.Get("state"),
			query.Get("error"),
		)

		http.Redirect(w, r, redirectURL, http.StatusFound)
	})
}
