package meta

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adsync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const defaultPageSize = 500

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=service.go -destination=mocks/integrator.go -package=mocks

// Integrator expõe as operações da plataforma no vocabulário do domínio
type Integrator interface {
	ListCampaigns(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error)
	ListAdSets(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error)
	ListAds(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error)
	UpdateStatus(ctx context.Context, conn *domain.AccountConnection, externalID string, status domain.EntityStatus) error
	UpdateBudget(ctx context.Context, conn *domain.AccountConnection, externalID string, amount decimal.Decimal, budgetType domain.BudgetType) error
	ListAdAccounts(ctx context.Context, token string) ([]domain.RemoteAdAccount, error)
	GetSpendInsights(ctx context.Context, conn *domain.AccountConnection, level domain.EntityType, date time.Time) ([]domain.RemoteSpend, error)
}

type MetaIntegrator struct {
	pageSize int
	Client   metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	pageSize := cfg.Meta.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &MetaIntegrator{
		pageSize: pageSize,
		Client:   client,
	}
}

// ToLocalStatus traduz o status da plataforma. Tudo que não é ACTIVE ou PAUSED vira ARCHIVED.
func ToLocalStatus(remote string) domain.EntityStatus {
	switch strings.ToUpper(strings.TrimSpace(remote)) {
	case "ACTIVE":
		return domain.EntityStatusActive
	case "PAUSED":
		return domain.EntityStatusPaused
	default:
		return domain.EntityStatusArchived
	}
}

// AccountNode retorna o nó da Graph API para a conta de anúncios (act_<id>)
func AccountNode(externalID string) string {
	return "act_" + strings.TrimPrefix(externalID, "act_")
}

func (s *MetaIntegrator) ListCampaigns(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error) {
	var resp metadomain.ListResponse[metadomain.Campaign]
	if err := s.list(ctx, conn, "campaigns", "id,name,status,daily_budget,lifetime_budget", &resp); err != nil {
		return nil, err
	}

	entities := make([]domain.RemoteEntity, 0, len(resp.Data))
	for _, campaign := range resp.Data {
		entities = append(entities, remoteEntity(campaign.ID, campaign.Name, campaign.Status, campaign.DailyBudget, campaign.LifetimeBudget))
	}

	return entities, nil
}

func (s *MetaIntegrator) ListAdSets(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error) {
	var resp metadomain.ListResponse[metadomain.AdSet]
	if err := s.list(ctx, conn, "adsets", "id,name,status,campaign_id,daily_budget,lifetime_budget", &resp); err != nil {
		return nil, err
	}

	entities := make([]domain.RemoteEntity, 0, len(resp.Data))
	for _, adSet := range resp.Data {
		entities = append(entities, remoteEntity(adSet.ID, adSet.Name, adSet.Status, adSet.DailyBudget, adSet.LifetimeBudget))
	}

	return entities, nil
}

func (s *MetaIntegrator) ListAds(ctx context.Context, conn *domain.AccountConnection) ([]domain.RemoteEntity, error) {
	var resp metadomain.ListResponse[metadomain.Ad]
	if err := s.list(ctx, conn, "ads", "id,name,status,adset_id", &resp); err != nil {
		return nil, err
	}

	entities := make([]domain.RemoteEntity, 0, len(resp.Data))
	for _, ad := range resp.Data {
		entities = append(entities, remoteEntity(ad.ID, ad.Name, ad.Status, "", ""))
	}

	return entities, nil
}

// list busca uma única página de um edge da conta de anúncios
func (s *MetaIntegrator) list(ctx context.Context, conn *domain.AccountConnection, edge, fields string, out any) error {
	params := url.Values{}
	params.Set("fields", fields)
	params.Set("limit", strconv.Itoa(s.pageSize))

	body, err := s.Client.Get(ctx, conn, fmt.Sprintf("%s/%s", AccountNode(conn.ExternalID), edge), params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"connection_id": conn.ID,
			"edge":          edge,
			"error":         err.Error(),
		}).Error("meta: failed to list entities from API")
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: invalid %s payload: %v", domain.ErrUpstreamFailure, edge, err)
	}

	return nil
}

func (s *MetaIntegrator) UpdateStatus(ctx context.Context, conn *domain.AccountConnection, externalID string, status domain.EntityStatus) error {
	form := url.Values{}
	form.Set("status", string(status))

	return s.update(ctx, conn, externalID, form)
}

func (s *MetaIntegrator) UpdateBudget(ctx context.Context, conn *domain.AccountConnection, externalID string, amount decimal.Decimal, budgetType domain.BudgetType) error {
	field := "daily_budget"
	if budgetType == domain.BudgetTypeLifetime {
		field = "lifetime_budget"
	}

	form := url.Values{}
	form.Set(field, strconv.FormatInt(domain.ToMinorUnits(amount), 10))

	return s.update(ctx, conn, externalID, form)
}

func (s *MetaIntegrator) update(ctx context.Context, conn *domain.AccountConnection, externalID string, form url.Values) error {
	body, err := s.Client.Post(ctx, conn, externalID, form)
	if err != nil {
		return err
	}

	var resp metadomain.UpdateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: invalid update payload: %v", domain.ErrUpstreamFailure, err)
	}

	if !resp.Success {
		return fmt.Errorf("%w: update of %s not acknowledged", domain.ErrUpstreamFailure, externalID)
	}

	return nil
}

func (s *MetaIntegrator) ListAdAccounts(ctx context.Context, token string) ([]domain.RemoteAdAccount, error) {
	params := url.Values{}
	params.Set("fields", "id,account_id,name,account_status")
	params.Set("limit", strconv.Itoa(s.pageSize))

	body, err := s.Client.GetWithToken(ctx, token, "me/adaccounts", params)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("meta: failed to list ad accounts for token")
		return nil, err
	}

	var resp metadomain.ListResponse[metadomain.AdAccount]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid ad accounts payload: %v", domain.ErrUpstreamFailure, err)
	}

	accounts := make([]domain.RemoteAdAccount, 0, len(resp.Data))
	for _, account := range resp.Data {
		accounts = append(accounts, domain.RemoteAdAccount{
			ExternalID: AccountNode(account.ID),
			Name:       account.Name,
		})
	}

	return accounts, nil
}

func (s *MetaIntegrator) GetSpendInsights(ctx context.Context, conn *domain.AccountConnection, level domain.EntityType, date time.Time) ([]domain.RemoteSpend, error) {
	day := date.UTC().Format(time.DateOnly)

	timeRange, err := json.Marshal(map[string]string{"since": day, "until": day})
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("level", string(level))
	params.Set("fields", "campaign_id,adset_id,ad_id,spend,impressions,clicks,actions,date_start,date_stop")
	params.Set("time_range", string(timeRange))
	params.Set("limit", strconv.Itoa(s.pageSize))

	body, err := s.Client.Get(ctx, conn, fmt.Sprintf("%s/insights", AccountNode(conn.ExternalID)), params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"connection_id": conn.ID,
			"level":         level,
			"date":          day,
			"error":         err.Error(),
		}).Error("insights: failed to get spend insights from API")
		return nil, err
	}

	var resp metadomain.ListResponse[metadomain.Insight]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid insights payload: %v", domain.ErrUpstreamFailure, err)
	}

	dayStart, _ := time.Parse(time.DateOnly, day)

	rows := make([]domain.RemoteSpend, 0, len(resp.Data))
	for _, insight := range resp.Data {
		externalID := insight.ObjectID(string(level))
		if externalID == "" {
			continue
		}

		rows = append(rows, domain.RemoteSpend{
			ExternalID:   externalID,
			Date:         dayStart,
			Spend:        metadomain.ParseFloat(insight.Spend),
			Impressions:  metadomain.ParseInt(insight.Impressions),
			Clicks:       metadomain.ParseInt(insight.Clicks),
			Purchases:    insight.ActionCount(metadomain.PurchaseActionTypes),
			ContentViews: insight.ActionCount(metadomain.ContentViewActionTypes),
		})
	}

	logrus.WithFields(logrus.Fields{
		"connection_id": conn.ID,
		"level":         level,
		"date":          day,
		"rows":          len(rows),
	}).Debug("insights: successfully retrieved spend insights")

	return rows, nil
}

func remoteEntity(id, name, status, dailyBudget, lifetimeBudget string) domain.RemoteEntity {
	entity := domain.RemoteEntity{
		ExternalID: id,
		Name:       name,
		Status:     ToLocalStatus(status),
	}

	if daily, err := domain.FromMinorUnits(dailyBudget); err == nil {
		entity.DailyBudget = daily
	} else {
		logrus.WithField("external_id", id).Warn("meta: orçamento diário inválido ignorado")
	}

	if lifetime, err := domain.FromMinorUnits(lifetimeBudget); err == nil {
		entity.LifetimeBudget = lifetime
	} else {
		logrus.WithField("external_id", id).Warn("meta: orçamento vitalício inválido ignorado")
	}

	return entity
}
