package uow

import (
	"context"

	"loanguard-backend/internal/domain/fraud"
	"loanguard-backend/internal/domain/loan"
	"loanguard-backend/internal/domain/user"
)

type Repos struct {
	Loans loan.Repository
	Flags fraud.Repository
	Users user.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn with repos bound to one database transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
