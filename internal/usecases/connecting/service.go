package connecting

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/ratelimit"
	"github.com/vfg2006/adsync-api/pkg/utils"
	"github.com/vfg2006/adsync-api/pkg/vault"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultStateTTL = 10 * time.Minute

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Connector administra as conexões do tenant com a plataforma e o fluxo OAuth
type Connector interface {
	RegisterConnection(ctx context.Context, tenantID string, req domain.RegisterConnectionRequest) (*domain.AccountConnection, error)
	ListConnections(ctx context.Context, tenantID string) ([]*domain.AccountConnection, error)
	DisableConnection(ctx context.Context, tenantID, id string) error
	GetQuota(ctx context.Context, tenantID, id string) (*ratelimit.Status, error)
	ResetQuota(ctx context.Context, tenantID, id string) error
	AuthorizationURL(tenantID string) (string, error)
	// HandleCallback sempre retorna a URL de redirecionamento para o front-end
	HandleCallback(ctx context.Context, code, state, providerError string) string
}

// oauthState é o conteúdo cifrado do parâmetro state
type oauthState struct {
	TenantID  string `json:"tenant_id"`
	ExpiresAt int64  `json:"expires_at"`
}

type Service struct {
	connectionRepo repository.ConnectionRepository
	cipher         vault.Cipher
	oauth          metaclient.Client
	integrator     meta.Integrator
	limiter        ratelimit.Limiter
	stateTTL       time.Duration
	frontendURL    string
	now            func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	cfg *config.Config,
	connectionRepo repository.ConnectionRepository,
	cipher vault.Cipher,
	oauth metaclient.Client,
	integrator meta.Integrator,
	limiter ratelimit.Limiter,
	opts ...Option,
) Connector {
	ttl := cfg.OAuth.StateTTL
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}

	s := &Service{
		connectionRepo: connectionRepo,
		cipher:         cipher,
		oauth:          oauth,
		integrator:     integrator,
		limiter:        limiter,
		stateTTL:       ttl,
		frontendURL:    cfg.OAuth.FrontendURL,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) RegisterConnection(ctx context.Context, tenantID string, req domain.RegisterConnectionRequest) (*domain.AccountConnection, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}
	if !req.Type.IsValid() {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown connection type %q", req.Type))
	}

	externalID := strings.TrimSpace(req.ExternalID)
	if externalID == "" {
		return nil, domain.NewValidationError("external_id", "is required")
	}
	if req.Type == domain.ConnectionTypeAdAccount {
		externalID = meta.AccountNode(externalID)
	}

	var parent *domain.AccountConnection
	if req.ParentID != nil && *req.ParentID != "" {
		found, err := s.connectionRepo.GetByID(ctx, tenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, fmt.Errorf("%w: parent %s not found", domain.ErrInvalidParent, *req.ParentID)
		}
		parent = found
	}

	if err := domain.ValidateConnectionParent(req.Type, parent); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da conexão: %w", err)
	}

	now := s.now().UTC()
	conn := &domain.AccountConnection{
		ID:         id,
		TenantID:   tenantID,
		Type:       req.Type,
		ExternalID: externalID,
		Name:       strings.TrimSpace(req.Name),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if parent != nil {
		conn.ParentID = &parent.ID
	}

	if req.AccessToken != nil && *req.AccessToken != "" {
		sealed, err := s.cipher.Encrypt(*req.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("erro ao cifrar token: %w", err)
		}
		conn.EncryptedAccessToken = &sealed
	}

	if err := s.connectionRepo.Create(ctx, conn); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"connection_id": conn.ID,
		"type":          conn.Type,
		"has_token":     conn.HasToken(),
	}).Info("connections: conexão registrada")

	return conn, nil
}

func (s *Service) ListConnections(ctx context.Context, tenantID string) ([]*domain.AccountConnection, error) {
	if tenantID == "" {
		return nil, domain.NewValidationError("tenant_id", "is required")
	}
	return s.connectionRepo.ListByTenant(ctx, tenantID)
}

func (s *Service) DisableConnection(ctx context.Context, tenantID, id string) error {
	if err := s.connectionRepo.Disable(ctx, tenantID, id); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"connection_id": id,
	}).Info("connections: conexão desativada")

	return nil
}

// GetQuota mostra a cota local de chamadas da conta de anúncios
func (s *Service) GetQuota(ctx context.Context, tenantID, id string) (*ratelimit.Status, error) {
	conn, err := s.adAccount(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.limiter.Status(ctx, conn.ExternalID)
}

func (s *Service) ResetQuota(ctx context.Context, tenantID, id string) error {
	conn, err := s.adAccount(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return s.limiter.Reset(ctx, conn.ExternalID)
}

func (s *Service) adAccount(ctx context.Context, tenantID, id string) (*domain.AccountConnection, error) {
	conn, err := s.connectionRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, domain.ErrConnectionNotFound
	}
	if conn.Type != domain.ConnectionTypeAdAccount {
		return nil, domain.NewValidationError("id", "quota only applies to ad_account connections")
	}
	return conn, nil
}

// AuthorizationURL gera a URL do diálogo de consentimento com o tenant cifrado no state
func (s *Service) AuthorizationURL(tenantID string) (string, error) {
	if tenantID == "" {
		return "", domain.NewValidationError("tenant_id", "is required")
	}

	payload, err := json.Marshal(oauthState{
		TenantID:  tenantID,
		ExpiresAt: s.now().Add(s.stateTTL).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao serializar state: %w", err)
	}

	state, err := s.cipher.Encrypt(string(payload))
	if err != nil {
		return "", fmt.Errorf("erro ao cifrar state: %w", err)
	}

	return s.oauth.AuthorizationURL(state), nil
}

func (s *Service) HandleCallback(ctx context.Context, code, state, providerError string) string {
	accounts, err := s.completeAuthorization(ctx, code, state, providerError)
	if err != nil {
		reason := ReasonServerError
		var cbErr *CallbackError
		if errors.As(err, &cbErr) {
			reason = cbErr.Reason
		}

		logrus.WithFields(logrus.Fields{
			"reason": reason,
			"error":  err.Error(),
		}).Warn("oauth: callback falhou")

		return s.redirect(url.Values{"status": {"error"}, "reason": {reason}})
	}

	return s.redirect(url.Values{"status": {"connected"}, "accounts": {strconv.Itoa(accounts)}})
}

// completeAuthorization valida o state, troca o código e grava o token em cada conta visível
func (s *Service) completeAuthorization(ctx context.Context, code, state, providerError string) (int, error) {
	if providerError != "" {
		return 0, newCallbackError(ReasonDenied, ErrProviderDenied)
	}

	tenantID, err := s.openState(state)
	if err != nil {
		return 0, err
	}

	if strings.TrimSpace(code) == "" {
		return 0, newCallbackError(ReasonInvalidRequest, domain.NewValidationError("code", "is required"))
	}

	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return 0, newCallbackError(ReasonServerError, err)
	}

	remoteAccounts, err := s.integrator.ListAdAccounts(ctx, token.AccessToken)
	if err != nil {
		return 0, newCallbackError(ReasonServerError, err)
	}
	if len(remoteAccounts) == 0 {
		return 0, newCallbackError(ReasonServerError, ErrNoAdAccounts)
	}

	sealed, err := s.cipher.Encrypt(token.AccessToken)
	if err != nil {
		return 0, newCallbackError(ReasonServerError, err)
	}

	now := s.now().UTC()
	for _, remote := range remoteAccounts {
		id, err := utils.GenerateID()
		if err != nil {
			return 0, newCallbackError(ReasonServerError, err)
		}

		sealedToken := sealed
		conn := &domain.AccountConnection{
			ID:                   id,
			TenantID:             tenantID,
			Type:                 domain.ConnectionTypeAdAccount,
			ExternalID:           remote.ExternalID,
			Name:                 remote.Name,
			EncryptedAccessToken: &sealedToken,
			Active:               true,
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		if err := s.connectionRepo.UpsertAdAccount(ctx, conn); err != nil {
			return 0, newCallbackError(ReasonServerError, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"accounts":  len(remoteAccounts),
	}).Info("oauth: contas de anúncio conectadas")

	return len(remoteAccounts), nil
}

func (s *Service) openState(state string) (string, error) {
	if strings.TrimSpace(state) == "" {
		return "", newCallbackError(ReasonInvalidRequest, ErrStateInvalid)
	}

	plaintext, err := s.cipher.Decrypt(state)
	if err != nil {
		return "", newCallbackError(ReasonInvalidRequest, fmt.Errorf("%w: %v", ErrStateInvalid, err))
	}

	var payload oauthState
	if err := json.Unmarshal([]byte(plaintext), &payload); err != nil || payload.TenantID == "" {
		return "", newCallbackError(ReasonInvalidRequest, ErrStateInvalid)
	}

	if !s.now().Before(time.Unix(payload.ExpiresAt, 0)) {
		return "", newCallbackError(ReasonTokenExpired, ErrStateExpired)
	}

	return payload.TenantID, nil
}

func (s *Service) redirect(params url.Values) string {
	base := s.frontendURL
	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + params.Encode()
}
