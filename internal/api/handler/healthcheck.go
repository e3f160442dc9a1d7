package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthcheckHandler responde 503 quando o banco não responde
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		database := "ok"

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				logrus.WithError(err).Warn("healthcheck: banco indisponível")
				status = http.StatusServiceUnavailable
				database = "down"
			}
		}

		writeJSON(w, status, map[string]string{
			"status":   http.StatusText(status),
			"database": database,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	})
}
