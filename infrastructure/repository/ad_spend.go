package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const adSpendTable = "ad_spend_counters"

//go:generate mockgen -source=ad_spend.go -destination=mocks/ad_spend.go -package=mocks

type AdSpendRepository interface {
	Upsert(ctx context.Context, counters []*domain.AdSpendCounter) error
	SumByEntities(ctx context.Context, tenantID string, entityType domain.EntityType, entityIDs []string, from, to *time.Time) (map[string]*domain.SpendTotals, error)
}

type adSpendRepository struct {
	conn *postgres.Connection
}

func NewAdSpendRepository(conn *postgres.Connection) AdSpendRepository {
	return &adSpendRepository{
		conn: conn,
	}
}

func (r *adSpendRepository) Upsert(ctx context.Context, counters []*domain.AdSpendCounter) error {
	if len(counters) == 0 {
		return nil
	}

	now := time.Now().UTC()

	for start := 0; start < len(counters); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(counters))

		builder := squirrel.
			Insert(adSpendTable).
			Columns("tenant_id", "entity_type", "entity_id", "date", "spend", "impressions", "clicks",
				"platform_purchases", "platform_content_views", "updated_at").
			PlaceholderFormat(squirrel.Dollar)

		for _, counter := range counters[start:end] {
			builder = builder.Values(
				counter.TenantID,
				counter.EntityType,
				counter.EntityID,
				counter.Date.Format(time.DateOnly),
				counter.Spend,
				counter.Impressions,
				counter.Clicks,
				counter.PlatformPurchases,
				counter.PlatformContentViews,
				now,
			)
		}

		query, args, err := builder.Suffix(`
			ON CONFLICT (tenant_id, entity_type, entity_id, date) DO UPDATE SET
				spend = EXCLUDED.spend,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				platform_purchases = EXCLUDED.platform_purchases,
				platform_content_views = EXCLUDED.platform_content_views,
				updated_at = EXCLUDED.updated_at
		`).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return wrapDBError(err)
		}
	}

	return nil
}

func (r *adSpendRepository) SumByEntities(ctx context.Context, tenantID string, entityType domain.EntityType, entityIDs []string, from, to *time.Time) (map[string]*domain.SpendTotals, error) {
	builder := squirrel.
		Select("entity_id", "SUM(spend)", "SUM(impressions)", "SUM(clicks)", "SUM(platform_purchases)", "SUM(platform_content_views)").
		From(adSpendTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"entity_type": entityType}).
		GroupBy("entity_id").
		OrderBy("entity_id").
		PlaceholderFormat(squirrel.Dollar)

	builder = applyEntityRange(builder, entityIDs, from, to)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	totals := make(map[string]*domain.SpendTotals)
	for rows.Next() {
		total := &domain.SpendTotals{}
		if err := rows.Scan(&total.EntityID, &total.Spend, &total.Impressions, &total.Clicks, &total.PlatformPurchases, &total.PlatformContentViews); err != nil {
			return nil, err
		}
		totals[total.EntityID] = total
	}

	return totals, rows.Err()
}
