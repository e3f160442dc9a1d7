package connecting

import (
	"errors"
	"fmt"
)

// Motivos enviados ao front-end quando o callback do OAuth falha
const (
	ReasonDenied         = "denied"
	ReasonInvalidRequest = "invalid_request"
	ReasonTokenExpired   = "token_expired"
	ReasonServerError    = "server_error"
)

var (
	ErrStateInvalid   = errors.New("oauth state is invalid")
	ErrStateExpired   = errors.New("oauth state has expired")
	ErrProviderDenied = errors.New("authorization denied by the user")
	ErrNoAdAccounts   = errors.New("token has no ad accounts")
)

// CallbackError associa a falha do callback ao motivo exposto ao cliente
type CallbackError struct {
	Err    error
	Reason string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("oauth callback failed (%s): %s", e.Reason, e.Err.Error())
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

func newCallbackError(reason string, err error) *CallbackError {
	return &CallbackError{Err: err, Reason: reason}
}
