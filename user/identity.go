package user

import (
	"context"

	"github.com/kokomiu/kokomiu-api/auth"
)

// PrincipalStore adapts the repository to the auth core's UserStore
// collaborator interface.
type PrincipalStore struct {
	repo *Repository
}

var _ auth.UserStore = PrincipalStore{}

func NewPrincipalStore(repo *Repository) PrincipalStore {
	return PrincipalStore{repo: repo}
}

func (s PrincipalStore) GetByID(ctx context.Context, id int64) (auth.Principal, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return auth.Principal{}, err
	}
	return principalFor(record), nil
}

func (s PrincipalStore) GetOrCreateByEmail(ctx context.Context, email, name, avatar string) (auth.Principal, error) {
	record, err := s.repo.GetOrCreateByEmail(ctx, email, name, avatar)
	if err != nil {
		return auth.Principal{}, err
	}
	return principalFor(record), nil
}

func principalFor(u *User) auth.Principal {
	return auth.Principal{
		ID:        u.ID,
		Kind:      auth.RoleUser,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}
