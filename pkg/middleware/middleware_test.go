package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsync-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/adsync-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		header         string
		setupMock      func(m *mocks.MockTokenValidator)
		expectedStatus int
		expectedTenant string
	}{
		{
			name:           "rota pública dispensa token",
			path:           "/v1/oauth/meta/callback",
			setupMock:      func(m *mocks.MockTokenValidator) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "sem header Authorization",
			path:           "/v1/connections",
			setupMock:      func(m *mocks.MockTokenValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "header sem Bearer",
			path:           "/v1/connections",
			header:         "Basic abc",
			setupMock:      func(m *mocks.MockTokenValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "token expirado",
			path:   "/v1/connections",
			header: "Bearer expired",
			setupMock: func(m *mocks.MockTokenValidator) {
				m.EXPECT().ValidateToken("expired").Return(nil, authenticating.ErrExpiredToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "token válido grava o tenant no contexto",
			path:   "/v1/connections",
			header: "Bearer good",
			setupMock: func(m *mocks.MockTokenValidator) {
				m.EXPECT().ValidateToken("good").Return(&domain.Claims{TenantID: "tenant-1", UserRoleID: RoleClient}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedTenant: "tenant-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			validator := mocks.NewMockTokenValidator(ctrl)
			tt.setupMock(validator)

			var gotTenant, gotLogTenant string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotTenant = TenantFromContext(r.Context())
				gotLogTenant = log.TenantID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedTenant, gotTenant)
			assert.Equal(t, tt.expectedTenant, gotLogTenant)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "AUTH_006")
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validator := mocks.NewMockTokenValidator(ctrl)
	validator.EXPECT().ValidateToken("admin").Return(&domain.Claims{TenantID: "t", UserRoleID: RoleAdmin}, nil)
	validator.EXPECT().ValidateToken("client").Return(&domain.Claims{TenantID: "t", UserRoleID: RoleClient}, nil)

	handler := AuthMiddleware(validator)(AdminOnly()(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer admin")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer client")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_008")
}

func TestRoleMiddleware_SemClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminOnly()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://app.example.com"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/connections", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/connections", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/connections", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoggingMiddleware_PropagaRequestID(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	LoggingMiddleware()(next).ServeHTTP(rec, req)

	assert.Equal(t, "req-42", gotID)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
	assert.NotContains(t, rec.Body.String(), "boom")
}
