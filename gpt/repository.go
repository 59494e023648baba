package gpt

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Repository is the bun-backed setting store.
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

// GetSetting returns the current setting, or nil when none has been saved yet.
func (r *Repository) GetSetting(ctx context.Context) (*Setting, error) {
	record := &Setting{}

	err := r.db.NewSelect().
		Model(record).
		Order("id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query gpt setting")
	}

	return record, nil
}

func (r *Repository) GetSettingByID(ctx context.Context, id int64) (*Setting, error) {
	record := &Setting{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("gpt setting not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query gpt setting")
	}

	return record, nil
}

// Save inserts a new setting or replaces an existing one by id.
func (r *Repository) Save(ctx context.Context, record *Setting) error {
	var err error
	if record.ID == 0 {
		_, err = r.db.NewInsert().Model(record).Exec(ctx)
	} else {
		_, err = r.db.NewUpdate().Model(record).ExcludeColumn("created_at").WherePK().Exec(ctx)
	}
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to save gpt setting")
	}
	return nil
}
