package authenticating

import "errors"

var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrMissingTenant = errors.New("token sem tenant")
)
