package admin

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/kokomiu/kokomiu-api/auth"
)

// Service verifies admin credentials against stored argon2id hashes.
type Service struct {
	repo   *Repository
	logger auth.Logger
}

type ServiceOption func(*Service)

func WithServiceLogger(l auth.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(repo *Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Login loads the admin by email and compares the password hash. A missing
// admin and a mismatched password both surface as the same credentials error.
func (s *Service) Login(ctx context.Context, email, password string) (*Admin, error) {
	record, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		if s.logger != nil {
			s.logger.Info("admin password mismatch for %s", email)
		}
		return nil, auth.ErrInvalidCredentials
	}

	return record, nil
}

// GetByID resolves an admin record by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}
