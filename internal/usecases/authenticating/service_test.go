package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims domain.Claims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	service := NewService(&config.Config{SecretKey: secret})
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "Token válido com tenant",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), domain.Claims{UserID: 7, TenantID: "tenant-1", RegisteredClaims: valid})
			},
		},
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				expired := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
				return sign(t, jwt.SigningMethodHS256, []byte(secret), domain.Claims{TenantID: "tenant-1", RegisteredClaims: expired})
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "Assinatura com outro segredo",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), domain.Claims{TenantID: "tenant-1", RegisteredClaims: valid})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "Token sem tenant",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), domain.Claims{UserID: 1, RegisteredClaims: valid})
			},
			wantErr: ErrMissingTenant,
		},
		{
			name:    "Texto que não é JWT",
			token:   func(t *testing.T) string { return "not-a-token" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "tenant-1", claims.TenantID)
			assert.Equal(t, 7, claims.UserID)
		})
	}
}
