package admin

import (
	"context"

	"github.com/kokomiu/kokomiu-api/auth"
)

// PrincipalStore adapts the repository to the auth core's AdminStore
// collaborator interface, used on the refresh path.
type PrincipalStore struct {
	repo *Repository
}

var _ auth.AdminStore = PrincipalStore{}

func NewPrincipalStore(repo *Repository) PrincipalStore {
	return PrincipalStore{repo: repo}
}

func (s PrincipalStore) GetByID(ctx context.Context, id int64) (auth.Principal, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return auth.Principal{}, err
	}
	return Principal(record), nil
}

// Principal maps an admin record to the auth core's principal value. Admin
// session-info payloads carry no nickname.
func Principal(a *Admin) auth.Principal {
	return auth.Principal{
		ID:        a.ID,
		Kind:      auth.RoleAdmin,
		CreatedAt: a.CreatedAt,
	}
}
