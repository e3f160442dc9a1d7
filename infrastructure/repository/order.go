package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const ordersTable = "orders"

//go:generate mockgen -source=order.go -destination=mocks/order.go -package=mocks

// OrderRepository lê o log de pedidos. O serviço nunca escreve nesta tabela.
type OrderRepository interface {
	ListAttributable(ctx context.Context, tenantID string, from, to time.Time) ([]*domain.Order, error)
	ListTenantsWithOrders(ctx context.Context, from, to time.Time) ([]string, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// ListAttributable retorna os pedidos com created_at em [from, to) que têm ao menos uma tag
// e não estão cancelados ou estornados
func (r *orderRepository) ListAttributable(ctx context.Context, tenantID string, from, to time.Time) ([]*domain.Order, error) {
	query, args, err := squirrel.
		Select("id", "tenant_id", "total", "status", "created_at", "utm_campaign", "utm_adset", "utm_ad").
		From(ordersTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		Where(squirrel.NotEq{"LOWER(status)": domain.ExcludedOrderStatuses}).
		Where(squirrel.Or{
			squirrel.NotEq{"utm_campaign": nil},
			squirrel.NotEq{"utm_adset": nil},
			squirrel.NotEq{"utm_ad": nil},
		}).
		OrderBy("created_at ASC").
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(
			&order.ID,
			&order.TenantID,
			&order.Total,
			&order.Status,
			&order.CreatedAt,
			&order.CampaignTag,
			&order.AdSetTag,
			&order.AdTag,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) ListTenantsWithOrders(ctx context.Context, from, to time.Time) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT tenant_id").
		From(ordersTable).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		OrderBy("tenant_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return queryStrings(ctx, r.conn, query, args)
}
