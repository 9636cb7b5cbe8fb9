package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"document-management-server/internal/common"

	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps driver errors onto the repository sentinels and wraps the rest.
func translate(message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", message, common.ErrDuplicate)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", message, common.ErrReferenced)
		}
	}
	return fmt.Errorf("%s: %w", message, err)
}

// expectRow reports ErrNotFound when a write touched no rows.
func expectRow(res sql.Result, message string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", message, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
