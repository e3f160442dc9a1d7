package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// wrapDBError anexa o código do postgres quando disponível
func wrapDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// rowScanner é satisfeito por *sql.Row e *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
