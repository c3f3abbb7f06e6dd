package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	Save(ctx context.Context, l *Application) error

	// CountRecentByUser counts the user's applications created at or after
	// since, including the one currently under evaluation.
	CountRecentByUser(ctx context.Context, userID uint64, since time.Time) (int64, error)

	ListByUser(ctx context.Context, userID uint64) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	ListByStatus(ctx context.Context, s Status) ([]Application, error)
	// ListEverFlagged returns loans that carry at least one fraud flag,
	// regardless of their current status.
	ListEverFlagged(ctx context.Context) ([]Application, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
}
