package loan

import (
	"time"

	fraudDomain "loanguard-backend/internal/domain/fraud"
	loanDomain "loanguard-backend/internal/domain/loan"
	"loanguard-backend/pkg/money"
)

type SubmitInput struct {
	Amount  string `json:"amount"`
	Purpose string `json:"purpose"`
}

type FlagDTO struct {
	ID        uint64    `json:"id"`
	Reason    string    `json:"reason"`
	FlaggedAt time.Time `json:"flagged_at"`
}

type LoanDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	Purpose   string    `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Flags     []FlagDTO `json:"fraud_flags"`
}

func ToFlagDTOs(flags []fraudDomain.FraudFlag) []FlagDTO {
	out := make([]FlagDTO, 0, len(flags))
	for _, f := range flags {
		out = append(out, FlagDTO{ID: f.ID, Reason: f.Reason, FlaggedAt: f.FlaggedAt})
	}
	return out
}

func ToDTO(l *loanDomain.Application) *LoanDTO {
	return &LoanDTO{
		ID:        l.ID,
		UserID:    l.UserID,
		Amount:    money.FormatCents(l.AmountCents),
		Status:    string(l.Status),
		Purpose:   l.Purpose,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Flags:     ToFlagDTOs(l.Flags),
	}
}
