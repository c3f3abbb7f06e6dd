package http

import (
	"context"
	"net/http"
	"testing"

	loanDomain "loanguard-backend/internal/domain/loan"
	"loanguard-backend/internal/domain/uow"
	userDomain "loanguard-backend/internal/domain/user"
	"loanguard-backend/internal/testutil/cachemock"
	"loanguard-backend/internal/testutil/loanmock"
	"loanguard-backend/internal/testutil/uowmock"
	loanUC "loanguard-backend/internal/usecase/loan"
)

type checkerFunc func(ctx context.Context, loanID uint64) ([]string, error)

func (f checkerFunc) RunChecks(ctx context.Context, loanID uint64) ([]string, error) {
	return f(ctx, loanID)
}

var noFlags = checkerFunc(func(context.Context, uint64) ([]string, error) { return nil, nil })

func newLoanHandler(repo *loanmock.Repo, checker loanUC.FraudChecker) *LoanHandler {
	tx := uowmock.Passthrough(uow.Repos{Loans: repo})
	return NewLoanHandler(loanUC.NewUsecase(repo, tx, checker, cachemock.New()))
}

func TestCreateLoan(t *testing.T) {
	e := newEcho()
	stored := &loanDomain.Application{ID: 3, UserID: 9, AmountCents: 500000, Status: loanDomain.StatusApproved, Purpose: "laptop"}
	repo := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *loanDomain.Application) error {
			l.ID = 3
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Application, error) {
			return stored, nil
		},
	}
	h := newLoanHandler(repo, noFlags)

	t.Run("created", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPost, "/loans", `{"amount":"5000.00","purpose":"laptop"}`)
		withActor(c, userDomain.Actor{UserID: 9})
		if err := h.CreateLoan(c); err != nil {
			t.Fatalf("CreateLoan: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
		var dto loanUC.LoanDTO
		decodeJSON(t, rec, &dto)
		if dto.ID != 3 || dto.Amount != "5000.00" || dto.Status != "APPROVED" {
			t.Fatalf("dto = %+v", dto)
		}
	})

	t.Run("no actor", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPost, "/loans", `{"amount":"5000.00","purpose":"laptop"}`)
		if err := h.CreateLoan(c); err != nil {
			t.Fatalf("CreateLoan: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("rejects bad amounts", func(t *testing.T) {
		for _, body := range []string{
			`{"amount":"abc","purpose":"laptop"}`,
			`{"amount":"-5","purpose":"laptop"}`,
			`{"amount":"0.-1","purpose":"laptop"}`,
			`{"amount":"1.234","purpose":"laptop"}`,
			`{"purpose":"laptop"}`,
			`{"amount":"5000.00"}`,
		} {
			c, rec := newJSONContext(e, http.MethodPost, "/loans", body)
			withActor(c, userDomain.Actor{UserID: 9})
			if err := h.CreateLoan(c); err != nil {
				t.Fatalf("CreateLoan(%s): %v", body, err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("CreateLoan(%s) status = %d, want 422", body, rec.Code)
			}
		}
	})
}

func TestListLoans_ScopesToActor(t *testing.T) {
	e := newEcho()
	repo := &loanmock.Repo{
		ListByUserFn: func(ctx context.Context, userID uint64) ([]loanDomain.Application, error) {
			return []loanDomain.Application{{ID: 1, UserID: userID, Status: loanDomain.StatusPending}}, nil
		},
		ListAllFn: func(ctx context.Context) ([]loanDomain.Application, error) {
			return []loanDomain.Application{
				{ID: 1, UserID: 9, Status: loanDomain.StatusPending},
				{ID: 2, UserID: 10, Status: loanDomain.StatusApproved},
			}, nil
		},
	}
	h := newLoanHandler(repo, noFlags)

	c, rec := newJSONContext(e, http.MethodGet, "/loans", "")
	withActor(c, userDomain.Actor{UserID: 9})
	if err := h.ListLoans(c); err != nil {
		t.Fatalf("ListLoans: %v", err)
	}
	var resp listResponse
	decodeJSON(t, rec, &resp)
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("user listing = %+v", resp)
	}

	c, rec = newJSONContext(e, http.MethodGet, "/loans", "")
	withActor(c, userDomain.Actor{UserID: 1, IsAdmin: true})
	if err := h.ListLoans(c); err != nil {
		t.Fatalf("ListLoans: %v", err)
	}
	decodeJSON(t, rec, &resp)
	if resp.Count != 2 {
		t.Fatalf("admin listing count = %d, want 2", resp.Count)
	}
}

func TestGetLoan(t *testing.T) {
	e := newEcho()
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Application, error) {
			if id != 3 {
				return nil, loanDomain.ErrNotFound
			}
			return &loanDomain.Application{ID: 3, UserID: 9, Status: loanDomain.StatusPending}, nil
		},
	}
	h := newLoanHandler(repo, noFlags)

	cases := []struct {
		name     string
		id       string
		actor    userDomain.Actor
		wantCode int
	}{
		{"owner", "3", userDomain.Actor{UserID: 9}, http.StatusOK},
		{"admin", "3", userDomain.Actor{UserID: 1, IsAdmin: true}, http.StatusOK},
		{"other user", "3", userDomain.Actor{UserID: 10}, http.StatusNotFound},
		{"unknown id", "99", userDomain.Actor{UserID: 9}, http.StatusNotFound},
		{"junk id", "abc", userDomain.Actor{UserID: 9}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodGet, "/loans/"+tc.id, "")
			withActor(c, tc.actor)
			withLoanID(c, tc.id)
			if err := h.GetLoan(c); err != nil {
				t.Fatalf("GetLoan: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.wantCode, rec.Body.String())
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	e := newEcho()
	newRepo := func(status loanDomain.Status) *loanmock.Repo {
		return &loanmock.Repo{
			GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Application, error) {
				if id != 3 {
					return nil, loanDomain.ErrNotFound
				}
				return &loanDomain.Application{ID: 3, UserID: 9, Status: status}, nil
			},
		}
	}

	cases := []struct {
		name     string
		status   loanDomain.Status
		actor    userDomain.Actor
		id       string
		wantCode int
	}{
		{"owner pending", loanDomain.StatusPending, userDomain.Actor{UserID: 9}, "3", http.StatusNoContent},
		{"not owner", loanDomain.StatusPending, userDomain.Actor{UserID: 10}, "3", http.StatusForbidden},
		{"already approved", loanDomain.StatusApproved, userDomain.Actor{UserID: 9}, "3", http.StatusBadRequest},
		{"flagged", loanDomain.StatusFlagged, userDomain.Actor{UserID: 9}, "3", http.StatusBadRequest},
		{"unknown id", loanDomain.StatusPending, userDomain.Actor{UserID: 9}, "99", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newLoanHandler(newRepo(tc.status), noFlags)
			c, rec := newJSONContext(e, http.MethodPost, "/loans/"+tc.id+"/withdraw", "")
			withActor(c, tc.actor)
			withLoanID(c, tc.id)
			if err := h.Withdraw(c); err != nil {
				t.Fatalf("Withdraw: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.wantCode, rec.Body.String())
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	e := newEcho()
	repo := &loanmock.Repo{
		CountByStatusFn: func(ctx context.Context, s loanDomain.Status) (int64, error) {
			if s == loanDomain.StatusPending {
				return 4, nil
			}
			return 0, nil
		},
	}
	h := newLoanHandler(repo, noFlags)

	c, rec := newJSONContext(e, http.MethodGet, "/loans/dashboard", "")
	withActor(c, userDomain.Actor{UserID: 9})
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var counts map[string]int64
	decodeJSON(t, rec, &counts)
	if counts["PENDING"] != 4 || len(counts) != len(loanDomain.AllStatuses) {
		t.Fatalf("counts = %v", counts)
	}
}
