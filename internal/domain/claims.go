package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são emitidas pelo serviço de identidade; aqui apenas validamos e lemos o tenant
type Claims struct {
	UserID     int    `json:"user_id"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	TenantID   string `json:"tenant_id"`
	jwt.RegisteredClaims
}
