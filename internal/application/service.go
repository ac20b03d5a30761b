package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/unicode/norm"

	"winsbygroup.com/appmachineid/internal/machineid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already registered")
	ErrInvalid   = errors.New("invalid application")
)

type Service struct {
	repo Repository
	db   *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:   db,
		repo: New(db),
	}
}

func (s *Service) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Service) GetAll(ctx context.Context) ([]Application, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Application, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Application, error) {
	return s.repo.GetByName(ctx, NormalizeName(name))
}

// GetByUUID accepts any textual uuid form.
func (s *Service) GetByUUID(ctx context.Context, appUUID string) (*Application, error) {
	id, err := machineid.ParseAppID(appUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return s.repo.GetByUUID(ctx, machineid.FormatUUID(id))
}

// NormalizeName trims surrounding space and applies Unicode NFC so that
// visually identical names map to the same row.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// prepare normalises a in place and checks its fields.
func prepare(a *Application) error {
	a.AppName = NormalizeName(a.AppName)
	a.Description = strings.TrimSpace(a.Description)

	if a.AppName == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if strings.TrimSpace(a.AppUUID) == "" {
		return fmt.Errorf("%w: uuid is required", ErrInvalid)
	}

	id, err := machineid.ParseAppID(strings.TrimSpace(a.AppUUID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if id == ([machineid.Size]byte{}) {
		return fmt.Errorf("%w: the nil uuid cannot identify an application", ErrInvalid)
	}
	a.AppUUID = machineid.FormatUUID(id)

	return nil
}

func (s *Service) Create(ctx context.Context, a *Application) (*Application, error) {
	if err := prepare(a); err != nil {
		return nil, err
	}

	var id int64
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = s.repo.Create(ctx, tx, a)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Application) error {
	if err := prepare(a); err != nil {
		return err
	}

	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Update(ctx, tx, a)
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}
