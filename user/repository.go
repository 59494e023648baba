package user

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Repository is the bun-backed user store.
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapSelectErr(err, "user")
	}

	return record, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapSelectErr(err, "user")
	}

	return record, nil
}

// GetOrCreateByEmail returns the user for the email, creating one on first
// login. The email column is unique, so a concurrent first login loses the
// insert race and falls back to the winner's row; two calls with the same
// email never yield two identities.
func (r *Repository) GetOrCreateByEmail(ctx context.Context, email, name, avatar string) (*User, error) {
	existing, err := r.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	record := &User{
		Nickname:     name,
		Email:        email,
		ProfileImage: avatar,
		Active:       true,
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		// Lost the race on the unique email index.
		if winner, selErr := r.GetByEmail(ctx, email); selErr == nil {
			return winner, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}

	// Re-read so database defaults (created_at) are populated.
	return r.GetByEmail(ctx, email)
}

func wrapSelectErr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New(what+" not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return errors.Wrap(err, errors.CategoryInternal, "failed to query "+what)
}
