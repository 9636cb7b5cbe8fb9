package repository

import (
	"context"
	"database/sql"
	"errors"

	"document-management-server/config"

	"github.com/jmoiron/sqlx"
)

type Transactor struct {
	*config.Database
}

func NewTransactor(database *config.Database) *Transactor {
	return &Transactor{database}
}

func (t *Transactor) DB() sqlx.ExtContext {
	return t.Database.DB
}

// BeginTX : opens a transaction; rollback after commit is a no-op
func (t *Transactor) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := t.Database.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	rollback := func() error {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			return err
		}
		return nil
	}
	return tx, rollback, tx.Commit, nil
}
