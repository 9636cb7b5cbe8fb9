package ports

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Transactor hands out the pool for single statements and transactions for
// multi-statement writes.
type Transactor interface {
	DB() sqlx.ExtContext
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}
