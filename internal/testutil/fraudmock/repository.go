package fraudmock

import (
	"context"

	domain "loanguard-backend/internal/domain/fraud"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock for domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, f *domain.FraudFlag) error
	DeleteByLoanIDFn func(ctx context.Context, loanID uint64) error
	ListByLoanIDFn   func(ctx context.Context, loanID uint64) ([]domain.FraudFlag, error)
}

func (m *Repo) Create(ctx context.Context, f *domain.FraudFlag) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	if m.DeleteByLoanIDFn != nil {
		return m.DeleteByLoanIDFn(ctx, loanID)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.FraudFlag, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

// Recorder collects created flags in memory and honours DeleteByLoanID, for
// tests that assert on the delete-then-recreate behaviour.
type Recorder struct {
	Flags  []domain.FraudFlag
	nextID uint64
}

var _ domain.Repository = (*Recorder)(nil)

func (r *Recorder) Create(ctx context.Context, f *domain.FraudFlag) error {
	r.nextID++
	f.ID = r.nextID
	r.Flags = append(r.Flags, *f)
	return nil
}

func (r *Recorder) DeleteByLoanID(ctx context.Context, loanID uint64) error {
	kept := r.Flags[:0]
	for _, f := range r.Flags {
		if f.LoanID != loanID {
			kept = append(kept, f)
		}
	}
	r.Flags = kept
	return nil
}

func (r *Recorder) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.FraudFlag, error) {
	var out []domain.FraudFlag
	for _, f := range r.Flags {
		if f.LoanID == loanID {
			out = append(out, f)
		}
	}
	return out, nil
}
