package postgres

import (
	"context"
	"database/sql"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUnitOfWork wraps a database handle in the UnitOfWork port.
func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) querier() SQLQuerier {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *sqlUnitOfWork) FileRepo() port.FileRepository {
	return NewSqlFileRepository(u.querier())
}

func (u *sqlUnitOfWork) DocumentRepo() port.DocumentRepository {
	return NewSqlDocumentRepository(u.querier())
}

func (u *sqlUnitOfWork) StepRepo() port.StepRepository {
	return NewSqlStepRepository(u.querier())
}

func (u *sqlUnitOfWork) AuditRepo() port.AuditRepository {
	return NewSqlAuditRepository(u.querier())
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
