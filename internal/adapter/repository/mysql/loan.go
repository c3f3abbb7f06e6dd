package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	fraudDomain "loanguard-backend/internal/domain/fraud"
	loanDomain "loanguard-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Application) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Application) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := r.db.WithContext(ctx).Preload("Flags").First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) CountRecentByUser(ctx context.Context, userID uint64, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Application{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID uint64) ([]loanDomain.Application, error) {
	var out []loanDomain.Application
	err := r.db.WithContext(ctx).
		Preload("Flags").
		Where("user_id = ?", userID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Application, error) {
	var out []loanDomain.Application
	err := r.db.WithContext(ctx).Preload("Flags").Order("id").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByStatus(ctx context.Context, s loanDomain.Status) ([]loanDomain.Application, error) {
	var out []loanDomain.Application
	err := r.db.WithContext(ctx).
		Preload("Flags").
		Where("status = ?", s).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListEverFlagged(ctx context.Context) ([]loanDomain.Application, error) {
	var out []loanDomain.Application
	sub := r.db.Model(&fraudDomain.FraudFlag{}).Distinct("loan_id")
	err := r.db.WithContext(ctx).
		Preload("Flags").
		Where("id IN (?)", sub).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) CountByStatus(ctx context.Context, s loanDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Application{}).
		Where("status = ?", s).
		Count(&n).Error
	return n, err
}
