package admin

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Repository is the bun-backed admin store.
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Admin, error) {
	record := &Admin{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapSelectErr(err)
	}

	return record, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	record := &Admin{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.admin_email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapSelectErr(err)
	}

	return record, nil
}

func wrapSelectErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("admin not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return errors.Wrap(err, errors.CategoryInternal, "failed to query admin")
}
