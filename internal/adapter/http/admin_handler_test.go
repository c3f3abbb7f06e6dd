package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	fraudDomain "loanguard-backend/internal/domain/fraud"
	loanDomain "loanguard-backend/internal/domain/loan"
	"loanguard-backend/internal/domain/uow"
	userDomain "loanguard-backend/internal/domain/user"
	"loanguard-backend/internal/testutil/cachemock"
	"loanguard-backend/internal/testutil/fraudmock"
	"loanguard-backend/internal/testutil/loanmock"
	"loanguard-backend/internal/testutil/notifymock"
	"loanguard-backend/internal/testutil/uowmock"
	approvalUC "loanguard-backend/internal/usecase/approval"
	fraudUC "loanguard-backend/internal/usecase/fraud"
	loanUC "loanguard-backend/internal/usecase/loan"
)

var admin = userDomain.Actor{UserID: 1, IsAdmin: true}

func newAdminHandler(loans *loanmock.Repo, flags fraudDomain.Repository) *AdminHandler {
	if flags == nil {
		flags = &fraudmock.Recorder{}
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Flags: flags})
	cache := cachemock.New()
	approvals := approvalUC.NewUsecase(tx, cache)
	fraud := fraudUC.NewUsecase(loans, tx, cache, &notifymock.Notifier{})
	return NewAdminHandler(approvals, fraud)
}

func pendingLoanRepo(status loanDomain.Status) *loanmock.Repo {
	return &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Application, error) {
			if id != 3 {
				return nil, loanDomain.ErrNotFound
			}
			return &loanDomain.Application{ID: 3, UserID: 9, AmountCents: 500000, Status: status}, nil
		},
	}
}

func TestAdminDecisions(t *testing.T) {
	e := newEcho()

	approve := (*AdminHandler).Approve
	reject := (*AdminHandler).Reject

	cases := []struct {
		name       string
		status     loanDomain.Status
		actor      userDomain.Actor
		id         string
		act        func(h *AdminHandler, c echo.Context) error
		wantCode   int
		wantStatus string
	}{
		{"approve pending", loanDomain.StatusPending, admin, "3", approve, http.StatusOK, "APPROVED"},
		{"approve flagged", loanDomain.StatusFlagged, admin, "3", approve, http.StatusOK, "APPROVED"},
		{"approve withdrawn", loanDomain.StatusWithdrawn, admin, "3", approve, http.StatusForbidden, ""},
		{"approve as non-admin", loanDomain.StatusPending, userDomain.Actor{UserID: 9}, "3", approve, http.StatusForbidden, ""},
		{"approve unknown id", loanDomain.StatusPending, admin, "99", approve, http.StatusNotFound, ""},
		{"reject pending", loanDomain.StatusPending, admin, "3", reject, http.StatusOK, "REJECTED"},
		{"reject rejected", loanDomain.StatusRejected, admin, "3", reject, http.StatusForbidden, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newAdminHandler(pendingLoanRepo(tc.status), nil)
			c, rec := newJSONContext(e, http.MethodPost, "/admin/loans/"+tc.id, "")
			withActor(c, tc.actor)
			withLoanID(c, tc.id)
			if err := tc.act(h, c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.wantCode, rec.Body.String())
			}
			if tc.wantStatus != "" {
				var dto loanUC.LoanDTO
				decodeJSON(t, rec, &dto)
				if dto.Status != tc.wantStatus {
					t.Fatalf("loan status = %s, want %s", dto.Status, tc.wantStatus)
				}
			}
		})
	}
}

func TestAdminFlag(t *testing.T) {
	e := newEcho()

	t.Run("default reason", func(t *testing.T) {
		rec2 := &fraudmock.Recorder{}
		h := newAdminHandler(pendingLoanRepo(loanDomain.StatusPending), rec2)
		c, rec := newJSONContext(e, http.MethodPost, "/admin/loans/3/flag", `{}`)
		withActor(c, admin)
		withLoanID(c, "3")
		if err := h.Flag(c); err != nil {
			t.Fatalf("Flag: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var dto loanUC.LoanDTO
		decodeJSON(t, rec, &dto)
		if dto.Status != "FLAGGED" || len(dto.Flags) != 1 {
			t.Fatalf("dto = %+v", dto)
		}
		if dto.Flags[0].Reason != fraudDomain.ReasonManualDefault {
			t.Fatalf("reason = %q", dto.Flags[0].Reason)
		}
	})

	t.Run("supplied reason", func(t *testing.T) {
		h := newAdminHandler(pendingLoanRepo(loanDomain.StatusPending), nil)
		c, rec := newJSONContext(e, http.MethodPost, "/admin/loans/3/flag", `{"reason":"suspicious documents"}`)
		withActor(c, admin)
		withLoanID(c, "3")
		if err := h.Flag(c); err != nil {
			t.Fatalf("Flag: %v", err)
		}
		var dto loanUC.LoanDTO
		decodeJSON(t, rec, &dto)
		if len(dto.Flags) != 1 || dto.Flags[0].Reason != "suspicious documents" {
			t.Fatalf("dto = %+v", dto)
		}
	})

	t.Run("only pending can be flagged", func(t *testing.T) {
		for _, s := range []loanDomain.Status{loanDomain.StatusApproved, loanDomain.StatusFlagged, loanDomain.StatusRejected, loanDomain.StatusWithdrawn} {
			h := newAdminHandler(pendingLoanRepo(s), nil)
			c, rec := newJSONContext(e, http.MethodPost, "/admin/loans/3/flag", `{}`)
			withActor(c, admin)
			withLoanID(c, "3")
			if err := h.Flag(c); err != nil {
				t.Fatalf("Flag(%s): %v", s, err)
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("Flag(%s) status = %d, want 403", s, rec.Code)
			}
		}
	})
}

func TestAdminFlaggedLists(t *testing.T) {
	e := newEcho()
	repo := &loanmock.Repo{
		ListByStatusFn: func(ctx context.Context, s loanDomain.Status) ([]loanDomain.Application, error) {
			return []loanDomain.Application{{ID: 3, UserID: 9, Status: s}}, nil
		},
		ListEverFlaggedFn: func(ctx context.Context) ([]loanDomain.Application, error) {
			return []loanDomain.Application{
				{ID: 3, UserID: 9, Status: loanDomain.StatusFlagged},
				{ID: 4, UserID: 9, Status: loanDomain.StatusApproved},
			}, nil
		},
	}
	h := newAdminHandler(repo, nil)

	c, rec := newJSONContext(e, http.MethodGet, "/admin/fraud/flagged", "")
	withActor(c, admin)
	if err := h.ListFlagged(c); err != nil {
		t.Fatalf("ListFlagged: %v", err)
	}
	var resp listResponse
	decodeJSON(t, rec, &resp)
	if resp.Count != 1 || resp.Results[0].Status != "FLAGGED" {
		t.Fatalf("flagged = %+v", resp)
	}

	c, rec = newJSONContext(e, http.MethodGet, "/admin/fraud/flagged/all", "")
	withActor(c, admin)
	if err := h.ListFlaggedHistory(c); err != nil {
		t.Fatalf("ListFlaggedHistory: %v", err)
	}
	decodeJSON(t, rec, &resp)
	if resp.Count != 2 {
		t.Fatalf("history = %+v", resp)
	}
}
