package loan

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"loanguard-backend/internal/domain/kv"
	loanDomain "loanguard-backend/internal/domain/loan"
	userDomain "loanguard-backend/internal/domain/user"
	"loanguard-backend/internal/domain/uow"
	"loanguard-backend/pkg/money"
)

const (
	dashboardCacheKey = "loan_dashboard"
	dashboardCacheTTL = 5 * time.Minute
)

// FraudChecker is the rule engine entry point, invoked explicitly after each
// submission so the dependency stays visible in the call graph.
type FraudChecker interface {
	RunChecks(ctx context.Context, loanID uint64) ([]string, error)
}

type Usecase struct {
	repo    loanDomain.Repository
	uow     uow.UnitOfWork
	checker FraudChecker
	cache   kv.Store
}

func NewUsecase(repo loanDomain.Repository, tx uow.UnitOfWork, checker FraudChecker, cache kv.Store) *Usecase {
	return &Usecase{repo: repo, uow: tx, checker: checker, cache: cache}
}

// Submit persists a new PENDING application for the user, runs the fraud
// checks on it and returns the post-evaluation state.
func (u *Usecase) Submit(ctx context.Context, userID uint64, in SubmitInput) (*LoanDTO, error) {
	cents, err := money.ParseCents(in.Amount)
	if err != nil {
		return nil, err
	}

	l := &loanDomain.Application{
		UserID:      userID,
		AmountCents: cents,
		Status:      loanDomain.StatusPending,
		Purpose:     in.Purpose,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	log.Printf("loan: created application id=%d user=%d amount=%s", l.ID, userID, in.Amount)

	if _, err := u.checker.RunChecks(ctx, l.ID); err != nil {
		return nil, fmt.Errorf("fraud checks for loan %d: %w", l.ID, err)
	}
	u.cache.Delete(ctx, dashboardCacheKey)

	fresh, err := u.repo.GetByID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return ToDTO(fresh), nil
}

// Get returns one application. Non-admins only ever see their own; anyone
// else's id behaves as if it did not exist.
func (u *Usecase) Get(ctx context.Context, loanID uint64, actor userDomain.Actor) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && l.UserID != actor.UserID {
		return nil, loanDomain.ErrNotFound
	}
	return ToDTO(l), nil
}

func (u *Usecase) List(ctx context.Context, actor userDomain.Actor) ([]LoanDTO, error) {
	var (
		ls  []loanDomain.Application
		err error
	)
	if actor.IsAdmin {
		ls, err = u.repo.ListAll(ctx)
	} else {
		ls, err = u.repo.ListByUser(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *ToDTO(&ls[i]))
	}
	return out, nil
}

// Withdraw pulls a PENDING application back, owner only. Ownership is
// checked before state so a non-owner cannot probe loan status.
func (u *Usecase) Withdraw(ctx context.Context, loanID uint64, actor userDomain.Actor) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if l.UserID != actor.UserID {
			return loanDomain.ErrNotOwner
		}
		if !l.CanWithdraw() {
			return fmt.Errorf("%w: only pending loans can be withdrawn", loanDomain.ErrInvalidTransition)
		}
		l.Status = loanDomain.StatusWithdrawn
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return err
	}
	log.Printf("loan: id=%d withdrawn by user=%d", loanID, actor.UserID)
	u.cache.Delete(ctx, dashboardCacheKey)
	return nil
}

// Dashboard returns loan counts per status, cached for five minutes.
func (u *Usecase) Dashboard(ctx context.Context) (map[string]int64, error) {
	if b, ok := u.cache.GetBytes(ctx, dashboardCacheKey); ok {
		var cached map[string]int64
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	out := make(map[string]int64, len(loanDomain.AllStatuses))
	for _, s := range loanDomain.AllStatuses {
		n, err := u.repo.CountByStatus(ctx, s)
		if err != nil {
			return nil, err
		}
		out[string(s)] = n
	}
	if b, err := json.Marshal(out); err == nil {
		u.cache.SetBytes(ctx, dashboardCacheKey, b, dashboardCacheTTL)
	}
	return out, nil
}
