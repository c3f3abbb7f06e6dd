package approval

import (
	"context"
	"fmt"
	"log"

	fraudDomain "loanguard-backend/internal/domain/fraud"
	"loanguard-backend/internal/domain/kv"
	loanDomain "loanguard-backend/internal/domain/loan"
	userDomain "loanguard-backend/internal/domain/user"
	"loanguard-backend/internal/domain/uow"
	loanUC "loanguard-backend/internal/usecase/loan"
)

// Cache keys invalidated whenever an admin decision changes a loan.
var staleKeys = []string{"loan_dashboard", "fraud.flagged_loans", "fraud.flagged_loans_history"}

type Usecase struct {
	uow   uow.UnitOfWork
	cache kv.Store
}

func NewUsecase(tx uow.UnitOfWork, cache kv.Store) *Usecase {
	return &Usecase{uow: tx, cache: cache}
}

// Approve moves a PENDING or FLAGGED loan to APPROVED.
func (u *Usecase) Approve(ctx context.Context, loanID uint64, actor userDomain.Actor) (*loanUC.LoanDTO, error) {
	return u.decide(ctx, loanID, actor, loanDomain.StatusApproved)
}

// Reject moves a PENDING or FLAGGED loan to REJECTED.
func (u *Usecase) Reject(ctx context.Context, loanID uint64, actor userDomain.Actor) (*loanUC.LoanDTO, error) {
	return u.decide(ctx, loanID, actor, loanDomain.StatusRejected)
}

func (u *Usecase) decide(ctx context.Context, loanID uint64, actor userDomain.Actor, target loanDomain.Status) (*loanUC.LoanDTO, error) {
	if !actor.IsAdmin {
		return nil, userDomain.ErrNotAdmin
	}
	var dto *loanUC.LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if !l.CanDecide() {
			return fmt.Errorf("%w: only pending or flagged loans can be %s", loanDomain.ErrInvalidTransition, lowered(target))
		}
		l.Status = target
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = loanUC.ToDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("approval: admin=%d set loan id=%d to %s", actor.UserID, loanID, target)
	u.invalidate(ctx)
	return dto, nil
}

// Flag manually flags a PENDING loan, recording one fraud flag with the
// supplied reason, or the default when the reason is empty.
func (u *Usecase) Flag(ctx context.Context, loanID uint64, actor userDomain.Actor, reason string) (*loanUC.LoanDTO, error) {
	if !actor.IsAdmin {
		return nil, userDomain.ErrNotAdmin
	}
	if reason == "" {
		reason = fraudDomain.ReasonManualDefault
	}
	var dto *loanUC.LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if l.Status != loanDomain.StatusPending {
			return fmt.Errorf("%w: only pending loans can be flagged", loanDomain.ErrInvalidTransition)
		}
		if err := r.Flags.Create(ctx, &fraudDomain.FraudFlag{LoanID: l.ID, Reason: reason}); err != nil {
			return err
		}
		l.Status = loanDomain.StatusFlagged
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		flags, err := r.Flags.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		l.Flags = flags
		dto = loanUC.ToDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("approval: admin=%d manually flagged loan id=%d: %s", actor.UserID, loanID, reason)
	u.invalidate(ctx)
	return dto, nil
}

func (u *Usecase) invalidate(ctx context.Context) {
	for _, k := range staleKeys {
		u.cache.Delete(ctx, k)
	}
}

func lowered(s loanDomain.Status) string {
	switch s {
	case loanDomain.StatusApproved:
		return "approved"
	case loanDomain.StatusRejected:
		return "rejected"
	default:
		return string(s)
	}
}
