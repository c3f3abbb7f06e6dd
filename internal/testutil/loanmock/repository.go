package loanmock

import (
	"context"
	"time"

	domain "loanguard-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock for domain.Repository. Unset methods return
// zero values so tests only fill what they exercise.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Application) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Application, error)
	SaveFn              func(ctx context.Context, l *domain.Application) error
	CountRecentByUserFn func(ctx context.Context, userID uint64, since time.Time) (int64, error)
	ListByUserFn        func(ctx context.Context, userID uint64) ([]domain.Application, error)
	ListAllFn           func(ctx context.Context) ([]domain.Application, error)
	ListByStatusFn      func(ctx context.Context, s domain.Status) ([]domain.Application, error)
	ListEverFlaggedFn   func(ctx context.Context) ([]domain.Application, error)
	CountByStatusFn     func(ctx context.Context, s domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, l *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) CountRecentByUser(ctx context.Context, userID uint64, since time.Time) (int64, error) {
	if m.CountRecentByUserFn != nil {
		return m.CountRecentByUserFn(ctx, userID, since)
	}
	return 0, nil
}

func (m *Repo) ListByUser(ctx context.Context, userID uint64) ([]domain.Application, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Application, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, s domain.Status) ([]domain.Application, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, s)
	}
	return nil, nil
}

func (m *Repo) ListEverFlagged(ctx context.Context) ([]domain.Application, error) {
	if m.ListEverFlaggedFn != nil {
		return m.ListEverFlaggedFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CountByStatus(ctx context.Context, s domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, s)
	}
	return 0, nil
}
