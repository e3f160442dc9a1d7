package metaclient

import (
	"errors"

	"github.com/vfg2006/adsync-api/internal/domain"
)

// Faixa de códigos de limite por caso de uso de negócio (Marketing API)
const (
	businessThrottleFirst = 80000
	businessThrottleLast  = 80014
)

// errorTable traduz o código do envelope de erro da Meta para a taxonomia local.
// Códigos ausentes da tabela são tratados como falha da plataforma.
var errorTable = buildErrorTable()

func buildErrorTable() map[int]error {
	table := map[int]error{
		// token inválido, expirado, sessão invalidada ou usuário alterou a senha
		190: domain.ErrUnauthorized,
		102: domain.ErrUnauthorized,
		463: domain.ErrUnauthorized,
		467: domain.ErrUnauthorized,

		// limites de chamadas da aplicação, do usuário e da conta de anúncios
		4:   domain.ErrRateLimited,
		17:  domain.ErrRateLimited,
		32:  domain.ErrRateLimited,
		613: domain.ErrRateLimited,

		100: domain.ErrValidation,
	}

	for code := businessThrottleFirst; code <= businessThrottleLast; code++ {
		table[code] = domain.ErrRateLimited
	}

	return table
}

// lookupError retorna o sentinel do código e se o código é conhecido
func lookupError(code int) (error, bool) {
	err, ok := errorTable[code]
	if !ok {
		return domain.ErrUpstreamFailure, false
	}
	return err, true
}

// errorType é o rótulo usado nas métricas de falha
func errorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "upstream"
	}
}
