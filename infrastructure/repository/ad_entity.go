package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

var entityTables = map[domain.EntityType]string{
	domain.EntityTypeCampaign: "campaigns",
	domain.EntityTypeAdSet:    "adsets",
	domain.EntityTypeAd:       "ads",
}

var entityColumns = []string{
	"id", "tenant_id", "name", "status", "external_id", "connection_id",
	"daily_budget", "lifetime_budget", "updated_at",
}

//go:generate mockgen -source=ad_entity.go -destination=mocks/ad_entity.go -package=mocks

// AdEntityRepository acessa campanhas, conjuntos e anúncios. Toda consulta é filtrada pelo tenant.
type AdEntityRepository interface {
	GetByIDs(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string) ([]*domain.AdEntity, error)
	FindByExternalIDs(ctx context.Context, tenantID string, entityType domain.EntityType, externalIDs []string) (map[string]*domain.AdEntity, error)
	UpdateStatus(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string, status domain.EntityStatus) error
	UpdateBudget(ctx context.Context, tenantID string, ids []string, amount decimal.Decimal, budgetType domain.BudgetType) error
	ApplyRemoteState(ctx context.Context, tenantID string, entityType domain.EntityType, id string, remote domain.RemoteEntity) error
}

type adEntityRepository struct {
	conn *postgres.Connection
}

func NewAdEntityRepository(conn *postgres.Connection) AdEntityRepository {
	return &adEntityRepository{
		conn: conn,
	}
}

func tableFor(entityType domain.EntityType) (string, error) {
	table, ok := entityTables[entityType]
	if !ok {
		return "", domain.NewValidationError("entity_type", fmt.Sprintf("unknown entity type %q", entityType))
	}
	return table, nil
}

func (r *adEntityRepository) GetByIDs(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string) ([]*domain.AdEntity, error) {
	return r.find(ctx, tenantID, entityType, squirrel.Eq{"id": ids})
}

func (r *adEntityRepository) FindByExternalIDs(ctx context.Context, tenantID string, entityType domain.EntityType, externalIDs []string) (map[string]*domain.AdEntity, error) {
	entities, err := r.find(ctx, tenantID, entityType, squirrel.Eq{"external_id": externalIDs})
	if err != nil {
		return nil, err
	}

	byExternalID := make(map[string]*domain.AdEntity, len(entities))
	for _, entity := range entities {
		if entity.ExternalID != nil {
			byExternalID[*entity.ExternalID] = entity
		}
	}

	return byExternalID, nil
}

func (r *adEntityRepository) find(ctx context.Context, tenantID string, entityType domain.EntityType, where squirrel.Sqlizer) ([]*domain.AdEntity, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select(entityColumns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	entities := make([]*domain.AdEntity, 0)
	for rows.Next() {
		entity, err := scanAdEntity(rows, entityType)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, rows.Err()
}

func (r *adEntityRepository) UpdateStatus(ctx context.Context, tenantID string, entityType domain.EntityType, ids []string, status domain.EntityStatus) error {
	if len(ids) == 0 {
		return nil
	}

	table, err := tableFor(entityType)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update(table).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

// UpdateBudget grava o orçamento escolhido e limpa o outro tipo
func (r *adEntityRepository) UpdateBudget(ctx context.Context, tenantID string, ids []string, amount decimal.Decimal, budgetType domain.BudgetType) error {
	if len(ids) == 0 {
		return nil
	}

	builder := squirrel.
		Update(entityTables[domain.EntityTypeCampaign]).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	switch budgetType {
	case domain.BudgetTypeDaily:
		builder = builder.Set("daily_budget", amount).Set("lifetime_budget", nil)
	case domain.BudgetTypeLifetime:
		builder = builder.Set("lifetime_budget", amount).Set("daily_budget", nil)
	default:
		return domain.NewValidationError("budget_type", fmt.Sprintf("unknown budget type %q", budgetType))
	}

	query, args, err := builder.Set("updated_at", time.Now().UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

// ApplyRemoteState copia o status reportado pela plataforma e, quando informado, o orçamento
func (r *adEntityRepository) ApplyRemoteState(ctx context.Context, tenantID string, entityType domain.EntityType, id string, remote domain.RemoteEntity) error {
	table, err := tableFor(entityType)
	if err != nil {
		return err
	}

	builder := squirrel.
		Update(table).
		Set("status", remote.Status).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if entityType == domain.EntityTypeCampaign && (remote.DailyBudget != nil || remote.LifetimeBudget != nil) {
		builder = builder.
			Set("daily_budget", nullDecimal(remote.DailyBudget)).
			Set("lifetime_budget", nullDecimal(remote.LifetimeBudget))
	}

	query, args, err := builder.Set("updated_at", time.Now().UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

func scanAdEntity(row rowScanner, entityType domain.EntityType) (*domain.AdEntity, error) {
	entity := &domain.AdEntity{Type: entityType}
	var daily, lifetime decimal.NullDecimal

	if err := row.Scan(
		&entity.ID,
		&entity.TenantID,
		&entity.Name,
		&entity.Status,
		&entity.ExternalID,
		&entity.ConnectionID,
		&daily,
		&lifetime,
		&entity.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if daily.Valid {
		entity.DailyBudget = &daily.Decimal
	}
	if lifetime.Valid {
		entity.LifetimeBudget = &lifetime.Decimal
	}

	return entity, nil
}

func nullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *value, Valid: true}
}
