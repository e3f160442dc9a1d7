package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const connectionsTable = "account_connections"

var connectionColumns = []string{
	"id", "tenant_id", "type", "external_id", "name", "encrypted_access_token",
	"active", "parent_id", "created_at", "updated_at",
}

//go:generate mockgen -source=connection.go -destination=mocks/connection.go -package=mocks

type ConnectionRepository interface {
	Create(ctx context.Context, conn *domain.AccountConnection) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.AccountConnection, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.AccountConnection, error)
	ListActiveAdAccounts(ctx context.Context, tenantID string) ([]*domain.AccountConnection, error)
	UpsertAdAccount(ctx context.Context, conn *domain.AccountConnection) error
	Disable(ctx context.Context, tenantID, id string) error
	ListTenantsWithActiveAdAccounts(ctx context.Context) ([]string, error)
}

type connectionRepository struct {
	conn *postgres.Connection
}

func NewConnectionRepository(conn *postgres.Connection) ConnectionRepository {
	return &connectionRepository{
		conn: conn,
	}
}

func (r *connectionRepository) Create(ctx context.Context, c *domain.AccountConnection) error {
	query, args, err := squirrel.
		Insert(connectionsTable).
		Columns(connectionColumns...).
		Values(c.ID, c.TenantID, c.Type, c.ExternalID, c.Name, c.EncryptedAccessToken, c.Active, c.ParentID, c.CreatedAt, c.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("external_id", "is already registered for this tenant")
		}
		return wrapDBError(err)
	}

	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.AccountConnection, error) {
	query, args, err := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	conn, err := scanConnection(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}

	return conn, nil
}

func (r *connectionRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.AccountConnection, error) {
	return r.list(ctx, squirrel.Eq{"tenant_id": tenantID})
}

func (r *connectionRepository) ListActiveAdAccounts(ctx context.Context, tenantID string) ([]*domain.AccountConnection, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"tenant_id": tenantID},
		squirrel.Eq{"type": domain.ConnectionTypeAdAccount},
		squirrel.Eq{"active": true},
	})
}

func (r *connectionRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.AccountConnection, error) {
	query, args, err := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		Where(where).
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

	connections := make([]*domain.AccountConnection, 0)
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, conn)
	}

	return connections, rows.Err()
}

// UpsertAdAccount grava a conta vinda do OAuth. Uma nova autorização sobrescreve o token e reativa a conexão.
func (r *connectionRepository) UpsertAdAccount(ctx context.Context, c *domain.AccountConnection) error {
	now := time.Now().UTC()

	query, args, err := squirrel.
		Insert(connectionsTable).
		Columns(connectionColumns...).
		Values(c.ID, c.TenantID, domain.ConnectionTypeAdAccount, c.ExternalID, c.Name, c.EncryptedAccessToken, true, nil, now, now).
		Suffix(`
			ON CONFLICT (tenant_id, type, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				encrypted_access_token = EXCLUDED.encrypted_access_token,
				active = TRUE,
				updated_at = EXCLUDED.updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id":   c.TenantID,
			"external_id": c.ExternalID,
		}).Error("connections: falha ao gravar conta de anúncios")
		return wrapDBError(err)
	}

	return nil
}

func (r *connectionRepository) Disable(ctx context.Context, tenantID, id string) error {
	query, args, err := squirrel.
		Update(connectionsTable).
		Set("active", false).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrConnectionNotFound
	}

	return nil
}

func (r *connectionRepository) ListTenantsWithActiveAdAccounts(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT tenant_id").
		From(connectionsTable).
		Where(squirrel.Eq{"type": domain.ConnectionTypeAdAccount}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.NotEq{"encrypted_access_token": nil}).
		OrderBy("tenant_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return queryStrings(ctx, r.conn, query, args)
}

func scanConnection(row rowScanner) (*domain.AccountConnection, error) {
	conn := &domain.AccountConnection{}

	if err := row.Scan(
		&conn.ID,
		&conn.TenantID,
		&conn.Type,
		&conn.ExternalID,
		&conn.Name,
		&conn.EncryptedAccessToken,
		&conn.Active,
		&conn.ParentID,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return conn, nil
}

// queryStrings lê uma única coluna de texto
func queryStrings(ctx context.Context, q postgres.Queryer, query string, args []any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}
