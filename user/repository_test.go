package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const sqliteCreateUsers = `
CREATE TABLE tb_users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_nickname TEXT NOT NULL,
	user_email TEXT NOT NULL UNIQUE,
	user_profile_image TEXT,
	active BOOLEAN DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	last_login_at TIMESTAMP
);`

func setupUserRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec(sqliteCreateUsers)
	require.NoError(t, err)

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return NewRepository(bunDB), cleanup
}

func TestUserRepositoryGetOrCreateByEmail(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	ctx := context.Background()

	created, err := repo.GetOrCreateByEmail(ctx, "a@x.com", "koko", "https://img/koko.png")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "koko", created.Nickname)
	assert.Equal(t, "https://img/koko.png", created.ProfileImage)
	assert.True(t, created.Active)

	// Same email resolves to the same identity; the later profile values do
	// not overwrite the stored ones.
	again, err := repo.GetOrCreateByEmail(ctx, "a@x.com", "different name", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "koko", again.Nickname)
}

func TestUserRepositoryGetByID(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	ctx := context.Background()

	created, err := repo.GetOrCreateByEmail(ctx, "a@x.com", "koko", "")
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email)

	_, err = repo.GetByID(ctx, 9999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPrincipalStoreMapsUser(t *testing.T) {
	repo, cleanup := setupUserRepo(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPrincipalStore(repo)

	created, err := store.GetOrCreateByEmail(ctx, "a@x.com", "koko", "")
	require.NoError(t, err)
	assert.Equal(t, "user", created.Kind)
	assert.Equal(t, "koko", created.Nickname)

	byID, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)
	assert.NotNil(t, byID.CreatedAt)
}
