package syncing

import (
	"errors"

	"github.com/vfg2006/adsync-api/internal/domain"
)

// Motivos devolvidos ao cliente quando uma conta falha no pull-sync.
// Nunca carregam texto da plataforma.
const (
	ReasonCredentials = "credentials invalid or expired, reconnect the account"
	ReasonRateLimited = "platform rate limit reached, try again later"
	ReasonPlatform    = "platform request failed"
	ReasonInternal    = "internal error while saving platform data"
)

// failureReason traduz o erro de uma conta para um motivo genérico
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrDecryption):
		return ReasonCredentials
	case errors.Is(err, domain.ErrRateLimited):
		return ReasonRateLimited
	case errors.Is(err, domain.ErrUpstreamFailure), errors.Is(err, domain.ErrValidation):
		return ReasonPlatform
	default:
		return ReasonInternal
	}
}
