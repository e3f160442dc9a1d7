package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adsync-api/infrastructure/integrator/meta/domain"
)

// AuthorizationURL monta a URL do diálogo de autorização da Meta
func (c *MetaClient) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.cfg.AppID)
	params.Set("redirect_uri", c.cfg.RedirectURI)
	params.Set("state", state)
	params.Set("response_type", "code")
	if len(c.scopes) > 0 {
		params.Set("scope", strings.Join(c.scopes, ","))
	}

	return fmt.Sprintf("%s/%s/dialog/oauth?%s", strings.TrimRight(c.cfg.DialogURL, "/"), c.cfg.Version, params.Encode())
}

// ExchangeCode troca o código do callback por um token e tenta estendê-lo para longa duração.
// Se a extensão falhar, o token de curta duração é retornado.
func (c *MetaClient) ExchangeCode(ctx context.Context, code string) (*metadomain.TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("código de autorização não pode ser vazio")
	}

	params := url.Values{}
	params.Set("client_id", c.cfg.AppID)
	params.Set("client_secret", c.cfg.AppSecret)
	params.Set("redirect_uri", c.cfg.RedirectURI)
	params.Set("code", code)

	shortLived, err := c.requestToken(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("erro ao trocar código de autorização: %w", err)
	}

	longLived, err := c.longLivedToken(ctx, shortLived.AccessToken)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("metaclient: não foi possível obter token de longa duração, usando token de curta duração")
		return shortLived, nil
	}

	return longLived, nil
}

// longLivedToken obtém um token de longa duração a partir de um token de curta duração
func (c *MetaClient) longLivedToken(ctx context.Context, shortLivedToken string) (*metadomain.TokenResponse, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.cfg.AppID)
	params.Set("client_secret", c.cfg.AppSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	tokenResp, err := c.requestToken(ctx, params)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return tokenResp, nil
}

func (c *MetaClient) requestToken(ctx context.Context, params url.Values) (*metadomain.TokenResponse, error) {
	body, err := c.do(ctx, http.MethodGet, "oauth/access_token", params, "")
	if err != nil {
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
