package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"winsbygroup.com/appmachineid/internal/sqlite"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Application, error)
	Get(ctx context.Context, id int64) (*Application, error)
	GetByName(ctx context.Context, name string) (*Application, error)
	GetByUUID(ctx context.Context, appUUID string) (*Application, error)
	Create(ctx context.Context, tx *sqlx.Tx, a *Application) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, a *Application) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]Application, error) {
	out := []Application{}
	if err := r.db.SelectContext(ctx, &out, getAllApplicationsSQL); err != nil {
		return nil, fmt.Errorf("get all applications: %w", err)
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*Application, error) {
	return r.getOne(ctx, getApplicationSQL, id)
}

func (r *repo) GetByName(ctx context.Context, name string) (*Application, error) {
	return r.getOne(ctx, getApplicationByNameSQL, name)
}

func (r *repo) GetByUUID(ctx context.Context, appUUID string) (*Application, error) {
	return r.getOne(ctx, getApplicationByUUIDSQL, appUUID)
}

func (r *repo) getOne(ctx context.Context, query string, arg any) (*Application, error) {
	var a Application
	err := r.db.GetContext(ctx, &a, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w (%v)", ErrNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, tx *sqlx.Tx, a *Application) (int64, error) {
	res, err := tx.ExecContext(ctx, createApplicationSQL,
		a.AppName,
		a.AppUUID,
		a.Description,
	)
	if sqlite.IsUniqueConstraintError(err) {
		return 0, duplicateError(a)
	}
	if err != nil {
		return 0, fmt.Errorf("create application: %w", err)
	}
	return res.LastInsertId()
}

func (r *repo) Update(ctx context.Context, tx *sqlx.Tx, a *Application) error {
	res, err := tx.ExecContext(ctx, updateApplicationSQL,
		a.AppName,
		a.AppUUID,
		a.Description,
		a.ApplicationID,
	)
	if sqlite.IsUniqueConstraintError(err) {
		return duplicateError(a)
	}
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return requireRow(res, a.ApplicationID)
}

func (r *repo) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, deleteApplicationSQL, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return requireRow(res, id)
}

// duplicateError names both unique columns; SQLite reports only the first violated one.
func duplicateError(a *Application) error {
	return fmt.Errorf("%w (name %q or uuid %s)", ErrDuplicate, a.AppName, a.AppUUID)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w (%d)", ErrNotFound, id)
	}
	return nil
}
