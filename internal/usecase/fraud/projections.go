package fraud

import (
	"context"
	"encoding/json"

	loanDomain "loanguard-backend/internal/domain/loan"
	loanUC "loanguard-backend/internal/usecase/loan"
)

const (
	flaggedCacheKey = "fraud.flagged_loans"
	historyCacheKey = "fraud.flagged_loans_history"
)

// ListFlagged returns loans currently in FLAGGED status, flags nested,
// cached for five minutes.
func (u *Usecase) ListFlagged(ctx context.Context) ([]loanUC.LoanDTO, error) {
	return u.cachedList(ctx, flaggedCacheKey, func(ctx context.Context) ([]loanDomain.Application, error) {
		return u.loans.ListByStatus(ctx, loanDomain.StatusFlagged)
	})
}

// ListFlaggedHistory returns every loan that has ever carried a fraud flag,
// regardless of its current status.
func (u *Usecase) ListFlaggedHistory(ctx context.Context) ([]loanUC.LoanDTO, error) {
	return u.cachedList(ctx, historyCacheKey, u.loans.ListEverFlagged)
}

func (u *Usecase) cachedList(ctx context.Context, key string, query func(context.Context) ([]loanDomain.Application, error)) ([]loanUC.LoanDTO, error) {
	if b, ok := u.cache.GetBytes(ctx, key); ok {
		var cached []loanUC.LoanDTO
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	ls, err := query(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]loanUC.LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *loanUC.ToDTO(&ls[i]))
	}
	if b, err := json.Marshal(out); err == nil {
		u.cache.SetBytes(ctx, key, b, cacheTTL)
	}
	return out, nil
}
