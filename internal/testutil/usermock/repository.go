package usermock

import (
	"context"

	domain "loanguard-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock for domain.Repository.
type Repo struct {
	CreateFn                     func(ctx context.Context, u *domain.User) error
	GetByIDFn                    func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUsernameFn              func(ctx context.Context, username string) (*domain.User, error)
	CountDistinctByEmailDomainFn func(ctx context.Context, emailDomain string) (int64, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) CountDistinctByEmailDomain(ctx context.Context, emailDomain string) (int64, error) {
	if m.CountDistinctByEmailDomainFn != nil {
		return m.CountDistinctByEmailDomainFn(ctx, emailDomain)
	}
	return 0, nil
}
