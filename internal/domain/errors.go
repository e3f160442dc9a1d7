package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Taxonomia de erros compartilhada por todos os componentes
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrRateLimited         = errors.New("rate limited")
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamFailure     = errors.New("upstream failure")
	ErrNotFoundOrNotOwned  = errors.New("not found or not owned")
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrDecryption          = errors.New("decryption failed")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrInvalidParent       = errors.New("invalid connection parent")
	ErrNoActiveConnections = errors.New("no active ad account connections")
)

// RateLimitError carrega o tempo de espera sugerido para a próxima tentativa
type RateLimitError struct {
	RetryAfter time.Duration
	Scope      string
}

func NewRateLimitError(scope string, retryAfter time.Duration) *RateLimitError {
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return &RateLimitError{RetryAfter: retryAfter, Scope: scope}
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: please wait %d seconds", e.RetryAfterSeconds())
}

// RetryAfterSeconds arredonda para cima, nunca retorna menos que 1
func (e *RateLimitError) RetryAfterSeconds() int {
	seconds := int(math.Ceil(e.RetryAfter.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// PlatformError representa um erro retornado pela plataforma já traduzido para a taxonomia local
type PlatformError struct {
	Err     error
	Code    int
	Subcode int
	Message string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: platform code %d (subcode %d): %s", e.Err.Error(), e.Code, e.Subcode, e.Message)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// ValidationError descreve uma falha estrutural da requisição
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
