package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/log"
	"github.com/vfg2006/adsync-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errorMapping associa um erro da taxonomia ao código exposto ao cliente.
// A ordem importa: o primeiro que casar vence.
var errorMapping = []struct {
	target error
	code   string
}{
	{domain.ErrValidation, apiErrors.ErrInvalidRequest},
	{domain.ErrInvalidParent, apiErrors.ErrInvalidRequest},
	{domain.ErrNotFoundOrNotOwned, apiErrors.ErrNotFound},
	{domain.ErrConnectionNotFound, apiErrors.ErrNotFound},
	{domain.ErrNoActiveConnections, apiErrors.ErrNotFound},
	{domain.ErrIllegalTransition, apiErrors.ErrIllegalState},
	{domain.ErrDecryption, apiErrors.ErrUnreadableToken},
	{domain.ErrUnauthorized, apiErrors.ErrPlatformCredentials},
	{domain.ErrUpstreamFailure, apiErrors.ErrExternalService},
}

// writeDomainError traduz o erro do caso de uso para a resposta HTTP.
// Erros fora da taxonomia viram SRV_001 e a mensagem original fica só no log.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"path":  r.URL.Path,
		"error": err.Error(),
	})

	var rateLimitErr *domain.RateLimitError
	if errors.As(err, &rateLimitErr) {
		logger.Info(operation + ": limite atingido")
		apiErrors.WriteRateLimited(w, rateLimitErr.Error(), rateLimitErr.RetryAfterSeconds())
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		var details any
		if validationErr.Field != "" {
			details = map[string]string{"field": validationErr.Field}
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Error(), details)
		return
	}

	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			logger.Warn(operation + ": requisição recusada")
			apiErrors.WriteError(w, m.code, publicMessage(m.code, err), nil)
			return
		}
	}

	logger.Error(operation + ": erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
}

// publicMessage evita repassar o texto da plataforma ao cliente
func publicMessage(code string, err error) string {
	switch code {
	case apiErrors.ErrExternalService:
		return "A plataforma de anúncios não respondeu como esperado"
	case apiErrors.ErrPlatformCredentials:
		return "Credencial da plataforma inválida ou expirada"
	case apiErrors.ErrUnreadableToken:
		return "Credencial armazenada não pôde ser lida"
	}

	var platformErr *domain.PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Err.Error()
	}
	return err.Error()
}

// decodeBody lê o JSON do corpo e valida as tags do DTO
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(errors.Wrap(err, "decode body")).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados da requisição inválidos", details)
			return false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return false
	}

	return true
}

// tenantOrReject lê o tenant do token; o AuthMiddleware garante que ele existe
func tenantOrReject(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID := middleware.TenantFromContext(r.Context())
	if tenantID == "" {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token sem tenant", nil)
		return "", false
	}
	return tenantID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta")
	}
}
