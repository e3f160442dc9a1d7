package apiErrors

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro estáveis expostos ao cliente
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido ou ausente
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrPlatformCredentials   = "AUTH_011" // Credencial da plataforma inválida ou expirada

	// Limites
	ErrRateLimited = "RATE_001" // Cota de chamadas esgotada

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Recursos e estado
	ErrNotFound        = "NF_001"    // Recurso não encontrado ou de outro tenant
	ErrIllegalState    = "STATE_001" // Transição de estado não permitida
	ErrUnreadableToken = "CRYPT_001" // Segredo armazenado não pôde ser decifrado

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro na plataforma de anúncios
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrPlatformCredentials:   http.StatusUnauthorized,
	ErrRateLimited:           http.StatusTooManyRequests,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrIllegalState:          http.StatusConflict,
	ErrUnreadableToken:       http.StatusUnprocessableEntity,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código; códigos desconhecidos viram 500
func StatusFor(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// WriteRateLimited responde 429 com o cabeçalho Retry-After
func WriteRateLimited(w http.ResponseWriter, message string, retryAfterSeconds int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	WriteError(w, ErrRateLimited, message, map[string]int{"retry_after_seconds": retryAfterSeconds})
}
