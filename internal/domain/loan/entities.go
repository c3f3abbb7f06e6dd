package loan

import (
	"errors"
	"time"

	"loanguard-backend/internal/domain/fraud"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusFlagged   Status = "FLAGGED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// AllStatuses keeps dashboard ordering stable.
var AllStatuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusFlagged, StatusWithdrawn}

var (
	ErrNotFound          = errors.New("loan application not found")
	ErrInvalidTransition = errors.New("loan status does not allow this action")
	ErrNotOwner          = errors.New("loan belongs to another user")
)

// Application is a user's loan request. Amount is stored as integer cents
// (two implied fractional digits); binary floats never touch the amount.
type Application struct {
	ID          uint64            `gorm:"primaryKey;column:id"`
	UserID      uint64            `gorm:"column:user_id;not null;index:idx_loan_applications_user"`
	AmountCents int64             `gorm:"column:amount_cents;not null"`
	Status      Status            `gorm:"column:status;type:varchar(10);default:'PENDING';index"`
	Purpose     string            `gorm:"column:purpose;type:text"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	Flags       []fraud.FraudFlag `gorm:"foreignKey:LoanID"`
}

func (Application) TableName() string { return "loan_applications" }

// CanWithdraw reports whether the owner may still pull the application back.
func (a *Application) CanWithdraw() bool { return a.Status == StatusPending }

// CanDecide reports whether an admin approve/reject is still possible.
func (a *Application) CanDecide() bool {
	return a.Status == StatusPending || a.Status == StatusFlagged
}
