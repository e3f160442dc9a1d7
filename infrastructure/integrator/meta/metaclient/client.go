package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adsync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/ratelimit"
	"github.com/vfg2006/adsync-api/pkg/metrics"
	"github.com/vfg2006/adsync-api/pkg/vault"
)

const (
	apiName    = "meta"
	maxRetries = 3

	usageHeader = "X-Business-Use-Case-Usage"

	defaultBackoff          = time.Second
	defaultRemoteRetryAfter = 5 * time.Minute
	defaultTimeout          = 10 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

// Client executa chamadas autenticadas na Graph API em nome de uma conexão
type Client interface {
	Get(ctx context.Context, conn *domain.AccountConnection, path string, params url.Values) ([]byte, error)
	Post(ctx context.Context, conn *domain.AccountConnection, path string, form url.Values) ([]byte, error)
	Delete(ctx context.Context, conn *domain.AccountConnection, path string, params url.Values) ([]byte, error)
	// GetWithToken é usado em chamadas que não pertencem a uma conta de anúncios (fluxo OAuth)
	GetWithToken(ctx context.Context, token, path string, params url.Values) ([]byte, error)
	ExchangeCode(ctx context.Context, code string) (*metadomain.TokenResponse, error)
	AuthorizationURL(state string) string
}

type MetaClient struct {
	cfg        config.Meta
	scopes     []string
	httpClient *http.Client
	vault      vault.Cipher
	limiter    ratelimit.Limiter
	metrics    *metrics.Metrics
	sleep      func(ctx context.Context, d time.Duration) error
}

type Option func(*MetaClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MetaClient) {
		c.httpClient = httpClient
	}
}

// WithSleep substitui a espera entre tentativas, usado nos testes
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *MetaClient) {
		c.sleep = sleep
	}
}

func NewClient(cfg *config.Config, cipher vault.Cipher, limiter ratelimit.Limiter, m *metrics.Metrics, opts ...Option) *MetaClient {
	timeout := cfg.Meta.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if m == nil {
		m = metrics.NewNop()
	}

	client := &MetaClient{
		cfg:        cfg.Meta,
		scopes:     cfg.OAuth.Scopes,
		httpClient: &http.Client{Timeout: timeout},
		vault:      cipher,
		limiter:    limiter,
		metrics:    m,
		sleep:      sleepContext,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *MetaClient) Get(ctx context.Context, conn *domain.AccountConnection, path string, params url.Values) ([]byte, error) {
	return c.call(ctx, conn, http.MethodGet, path, params)
}

func (c *MetaClient) Post(ctx context.Context, conn *domain.AccountConnection, path string, form url.Values) ([]byte, error) {
	return c.call(ctx, conn, http.MethodPost, path, form)
}

func (c *MetaClient) Delete(ctx context.Context, conn *domain.AccountConnection, path string, params url.Values) ([]byte, error) {
	return c.call(ctx, conn, http.MethodDelete, path, params)
}

func (c *MetaClient) GetWithToken(ctx context.Context, token, path string, params url.Values) ([]byte, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	return c.do(ctx, http.MethodGet, path, params, token)
}

// call resolve o token da conexão e consome a cota antes de qualquer tentativa
func (c *MetaClient) call(ctx context.Context, conn *domain.AccountConnection, method, path string, params url.Values) ([]byte, error) {
	if conn == nil || !conn.HasToken() {
		return nil, domain.ErrUnauthorized
	}

	token, err := c.vault.Decrypt(*conn.EncryptedAccessToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"connection_id": conn.ID,
			"tenant_id":     conn.TenantID,
		}).Error("metaclient: token da conexão não pode ser decifrado")
		return nil, fmt.Errorf("%w: credential unusable", domain.ErrUnauthorized)
	}

	if err := c.limiter.CheckAndConsume(ctx, conn.ExternalID); err != nil {
		return nil, err
	}

	return c.do(ctx, method, path, params, token)
}

// do executa a requisição com novas tentativas para erros de transporte e 5xx
func (c *MetaClient) do(ctx context.Context, method, path string, params url.Values, token string) ([]byte, error) {
	backoff := c.cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff * time.Duration(1<<(attempt-1))
			logrus.WithFields(logrus.Fields{
				"method":  method,
				"path":    path,
				"attempt": attempt,
				"wait":    wait.String(),
			}).Warn("metaclient: nova tentativa após falha transitória")

			if err := c.sleep(ctx, wait); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
			}
		}

		status, header, body, err := c.send(ctx, method, path, params, token)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if status >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("status %d", status)
			continue
		}

		if apiErr := c.parseError(status, header, body); apiErr != nil {
			c.metrics.RecordExternalAPIFailure(apiName, errorType(apiErr))
			return nil, apiErr
		}

		return body, nil
	}

	c.metrics.RecordExternalAPIFailure(apiName, "upstream")

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"error":  lastErr.Error(),
	}).Error("metaclient: tentativas esgotadas")

	return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, lastErr)
}

func (c *MetaClient) send(ctx context.Context, method, path string, params url.Values, token string) (int, http.Header, []byte, error) {
	values := url.Values{}
	for key, vals := range params {
		values[key] = vals
	}

	query := url.Values{}
	if token != "" {
		query.Set("access_token", token)
	}

	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader(values.Encode())
	} else {
		for key, vals := range values {
			query[key] = vals
		}
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.cfg.URL, "/"), strings.TrimLeft(path, "/"))
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPICall(apiName, method, "error", time.Since(start))
		return 0, nil, nil, sanitize(err)
	}
	defer resp.Body.Close()

	c.metrics.RecordExternalAPICall(apiName, method, strconv.Itoa(resp.StatusCode), time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	return resp.StatusCode, resp.Header, respBody, nil
}

// parseError procura o envelope de erro em qualquer status, inclusive 200
func (c *MetaClient) parseError(status int, header http.Header, body []byte) error {
	var envelope metadomain.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return c.classify(envelope.Error, header)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return domain.NewRateLimitError("platform", c.remoteRetryAfter(header))
	case status >= http.StatusBadRequest:
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, status)
	}

	return nil
}

func (c *MetaClient) classify(details *metadomain.ErrorDetails, header http.Header) error {
	sentinel, known := lookupError(details.Code)
	if !known {
		logrus.WithFields(logrus.Fields{
			"code":       details.Code,
			"subcode":    details.ErrorSubcode,
			"type":       details.Type,
			"fbtrace_id": details.FBTraceID,
		}).Warn("metaclient: código de erro desconhecido, tratado como falha da plataforma")
	}

	err := sentinel
	if errors.Is(sentinel, domain.ErrRateLimited) {
		err = domain.NewRateLimitError("platform", c.remoteRetryAfter(header))
	}

	return &domain.PlatformError{
		Err:     err,
		Code:    details.Code,
		Subcode: details.ErrorSubcode,
		Message: details.Message,
	}
}

// remoteRetryAfter usa o tempo informado pela Meta quando disponível
func (c *MetaClient) remoteRetryAfter(header http.Header) time.Duration {
	fallback := c.cfg.RemoteRetryAfter
	if fallback <= 0 {
		fallback = defaultRemoteRetryAfter
	}

	raw := header.Get(usageHeader)
	if raw == "" {
		return fallback
	}

	var usage metadomain.BusinessUseCaseUsage
	if err := json.Unmarshal([]byte(raw), &usage); err != nil {
		return fallback
	}

	if minutes := usage.MaxRegainMinutes(); minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}

	return fallback
}

// sanitize remove a URL do erro de transporte, que carrega o access_token
func sanitize(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
