package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const (
	attributionTable = "attribution_counters"
	upsertBatchSize  = 500
)

//go:generate mockgen -source=attribution.go -destination=mocks/attribution.go -package=mocks

type AttributionRepository interface {
	// ReplaceRange zera compras e receita dos dias [from, to] e grava os contadores numa única transação
	ReplaceRange(ctx context.Context, tenantID string, from, to time.Time, counters []*domain.AttributionCounter) error
	SumByEntities(ctx context.Context, tenantID string, level domain.AttributionLevel, entityIDs []string, from, to *time.Time) (map[string]*domain.AttributionTotals, error)
}

type attributionRepository struct {
	conn *postgres.Connection
}

func NewAttributionRepository(conn *postgres.Connection) AttributionRepository {
	return &attributionRepository{
		conn: conn,
	}
}

func (r *attributionRepository) ReplaceRange(ctx context.Context, tenantID string, from, to time.Time, counters []*domain.AttributionCounter) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		resetSQL, resetArgs, err := squirrel.
			Update(attributionTable).
			Set("purchases", 0).
			Set("revenue", 0).
			Set("updated_at", time.Now().UTC()).
			Where(squirrel.Eq{"tenant_id": tenantID}).
			Where(squirrel.GtOrEq{"date": from.Format(time.DateOnly)}).
			Where(squirrel.LtOrEq{"date": to.Format(time.DateOnly)}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, resetSQL, resetArgs...); err != nil {
			return wrapDBError(err)
		}

		for start := 0; start < len(counters); start += upsertBatchSize {
			end := min(start+upsertBatchSize, len(counters))
			if err := upsertAttribution(ctx, tx, counters[start:end]); err != nil {
				return err
			}
		}

		return nil
	})
}

// upsertAttribution não toca em content_views e checkouts, que vêm de outra fonte
func upsertAttribution(ctx context.Context, q postgres.Queryer, counters []*domain.AttributionCounter) error {
	now := time.Now().UTC()

	builder := squirrel.
		Insert(attributionTable).
		Columns("tenant_id", "level", "entity_id", "date", "purchases", "revenue", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, counter := range counters {
		builder = builder.Values(
			counter.TenantID,
			counter.Level,
			counter.EntityID,
			counter.Date.Format(time.DateOnly),
			counter.Purchases,
			counter.Revenue,
			now,
		)
	}

	query, args, err := builder.Suffix(`
		ON CONFLICT (tenant_id, level, entity_id, date) DO UPDATE SET
			purchases = EXCLUDED.purchases,
			revenue = EXCLUDED.revenue,
			updated_at = EXCLUDED.updated_at
	`).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

// SumByEntities soma os contadores por entidade. Entidades sem nenhuma linha ficam fora do mapa.
// Sem entityIDs, todas as entidades do nível são consideradas.
func (r *attributionRepository) SumByEntities(ctx context.Context, tenantID string, level domain.AttributionLevel, entityIDs []string, from, to *time.Time) (map[string]*domain.AttributionTotals, error) {
	builder := squirrel.
		Select("entity_id", "SUM(content_views)", "SUM(checkouts)", "SUM(purchases)", "SUM(revenue)").
		From(attributionTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"level": level}).
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

	totals := make(map[string]*domain.AttributionTotals)
	for rows.Next() {
		total := &domain.AttributionTotals{}
		if err := rows.Scan(&total.EntityID, &total.ContentViews, &total.Checkouts, &total.Purchases, &total.Revenue); err != nil {
			return nil, err
		}
		totals[total.EntityID] = total
	}

	return totals, rows.Err()
}

// applyEntityRange aplica o filtro opcional de entidades e o período fechado [from, to]
func applyEntityRange(builder squirrel.SelectBuilder, entityIDs []string, from, to *time.Time) squirrel.SelectBuilder {
	if len(entityIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"entity_id": entityIDs})
	}
	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": from.Format(time.DateOnly)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": to.Format(time.DateOnly)})
	}
	return builder
}
