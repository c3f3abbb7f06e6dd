package mysql

import (
	"context"

	"gorm.io/gorm"

	fraudDomain "loanguard-backend/internal/domain/fraud"
)

type FraudFlagRepository struct{ db *gorm.DB }

func NewFraudFlagRepository(db *gorm.DB) *FraudFlagRepository { return &FraudFlagRepository{db: db} }

func (r *FraudFlagRepository) Create(ctx context.Context, f *fraudDomain.FraudFlag) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FraudFlagRepository) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Delete(&fraudDomain.FraudFlag{}).Error
}

func (r *FraudFlagRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]fraudDomain.FraudFlag, error) {
	var out []fraudDomain.FraudFlag
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id").
		Find(&out).Error
	return out, err
}
