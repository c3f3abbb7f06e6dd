package fraud

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	fraudDomain "loanguard-backend/internal/domain/fraud"
	"loanguard-backend/internal/domain/kv"
	loanDomain "loanguard-backend/internal/domain/loan"
	"loanguard-backend/internal/domain/uow"
)

const (
	// 2 implied fractional digits: 5,000,000.00 and 1,000,000.00 units.
	amountThresholdCents    int64 = 500_000_000
	autoApproveCeilingCents int64 = 100_000_000

	recentLoanLimit int64 = 3
	domainUserLimit int64 = 10

	recentWindow = 24 * time.Hour
	cacheTTL     = 5 * time.Minute
)

func recentLoansKey(userID uint64) string {
	return fmt.Sprintf("fraud.recent_loans.user_%d", userID)
}

func domainCountKey(domain string) string {
	return "fraud.domain_user_count_" + domain
}

type Usecase struct {
	loans    loanDomain.Repository
	uow      uow.UnitOfWork
	cache    kv.Store
	notifier fraudDomain.Notifier
}

func NewUsecase(loans loanDomain.Repository, tx uow.UnitOfWork, cache kv.Store, notifier fraudDomain.Notifier) *Usecase {
	return &Usecase{loans: loans, uow: tx, cache: cache, notifier: notifier}
}

// RunChecks evaluates the three fraud rules against a persisted loan, always
// in order: recent volume, amount threshold, email-domain concentration. It
// wipes the loan's previous flags, persists one flag per triggered rule and
// applies the resulting status transition, all in one transaction. Reasons
// come back in rule order.
//
// Calling it again on an unchanged loan reproduces the same status and the
// same reason set; only the flag row identities change.
func (u *Usecase) RunChecks(ctx context.Context, loanID uint64) ([]string, error) {
	reasons := []string{}
	var flaggedLoan *loanDomain.Application

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		owner, err := r.Users.GetByID(ctx, l.UserID)
		if err != nil {
			return err
		}

		// Fresh evaluation: drop whatever the previous run recorded.
		if err := r.Flags.DeleteByLoanID(ctx, l.ID); err != nil {
			return err
		}

		// Rule 1: more than 3 loans in the trailing 24 hours. The loan under
		// evaluation is already persisted and counts toward the total. The
		// cached count is advisory, written for observers but never read
		// back here.
		since := time.Now().UTC().Add(-recentWindow)
		recent, err := r.Loans.CountRecentByUser(ctx, l.UserID, since)
		if err != nil {
			return err
		}
		u.cache.SetInt64(ctx, recentLoansKey(l.UserID), recent, cacheTTL)
		if recent > recentLoanLimit {
			reasons = append(reasons, fraudDomain.ReasonRecentLoans)
		}

		// Rule 2: amount ceiling.
		if l.AmountCents > amountThresholdCents {
			reasons = append(reasons, fraudDomain.ReasonAmount)
		}

		// Rule 3: email-domain concentration. Cache first, distinct count on
		// miss; a cache failure just means recomputing.
		domain := owner.EmailDomain()
		domainUsers, ok := u.cache.GetInt64(ctx, domainCountKey(domain))
		if !ok {
			domainUsers, err = r.Users.CountDistinctByEmailDomain(ctx, domain)
			if err != nil {
				return err
			}
			u.cache.SetInt64(ctx, domainCountKey(domain), domainUsers, cacheTTL)
		}
		if domainUsers > domainUserLimit {
			reasons = append(reasons, fraudDomain.ReasonEmailDomain)
		}

		for _, reason := range reasons {
			if err := r.Flags.Create(ctx, &fraudDomain.FraudFlag{LoanID: l.ID, Reason: reason}); err != nil {
				return err
			}
		}

		switch {
		case len(reasons) > 0:
			log.Printf("fraud: loan id=%d flagged for reasons: %v", l.ID, reasons)
			l.Status = loanDomain.StatusFlagged
			flaggedLoan = l
		case l.AmountCents <= autoApproveCeilingCents:
			log.Printf("fraud: auto-approving loan id=%d with no fraud flags", l.ID)
			l.Status = loanDomain.StatusApproved
		default:
			// High-value carve-out: a clean loan above the auto-approve
			// ceiling stays PENDING for manual admin review.
			log.Printf("fraud: loan id=%d clean but above auto-approve ceiling, held pending", l.ID)
			return nil
		}
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	// The transition is committed; notification failures stay here.
	if flaggedLoan != nil {
		subject := fmt.Sprintf("Loan %d Flagged", flaggedLoan.ID)
		body := fmt.Sprintf("Loan %d flagged for reasons: %s", flaggedLoan.ID, strings.Join(reasons, ", "))
		if err := u.notifier.Notify(ctx, subject, body); err != nil {
			log.Printf("fraud: notify admin about loan id=%d: %v", flaggedLoan.ID, err)
		}
	}
	return reasons, nil
}
