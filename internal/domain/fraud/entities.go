package fraud

import (
	"context"
	"time"
)

// Reason strings produced by the rule engine. The flag rows and the returned
// reason list always follow rule order: recent volume, amount, email domain.
const (
	ReasonRecentLoans   = "More than 3 loans in 24 hours"
	ReasonAmount        = "Amount exceeds threshold"
	ReasonEmailDomain   = "Email domain used by more than 10 users"
	ReasonManualDefault = "Manually flagged by admin"
)

// FraudFlag is one audit-trail entry recording why a loan looked suspicious.
// Rows are never updated; re-evaluation deletes and recreates them.
type FraudFlag struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	LoanID    uint64    `gorm:"column:loan_id;not null;index:idx_fraud_flags_loan"`
	Reason    string    `gorm:"column:reason;size:255;not null"`
	FlaggedAt time.Time `gorm:"column:flagged_at;autoCreateTime"`
}

func (FraudFlag) TableName() string { return "fraud_flags" }

type Repository interface {
	Create(ctx context.Context, f *FraudFlag) error
	DeleteByLoanID(ctx context.Context, loanID uint64) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]FraudFlag, error)
}

// Notifier is the best-effort admin notification channel. A failed Notify is
// logged by the caller and must never fail the surrounding transition.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}
