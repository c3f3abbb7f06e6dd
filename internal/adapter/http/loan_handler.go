package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"loanguard-backend/internal/adapter/middleware"
	loanDomain "loanguard-backend/internal/domain/loan"
	loanUC "loanguard-backend/internal/usecase/loan"
	"loanguard-backend/pkg/money"
)

type LoanHandler struct {
	uc *loanUC.Usecase
}

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

type createLoanRequest struct {
	Amount  string `json:"amount" validate:"required,amount"`
	Purpose string `json:"purpose" validate:"required,max=255"`
}

type listResponse struct {
	Count   int              `json:"count"`
	Results []loanUC.LoanDTO `json:"results"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
	}

	var req createLoanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Submit(c.Request().Context(), actor.UserID, loanUC.SubmitInput{
		Amount:  req.Amount,
		Purpose: req.Purpose,
	})
	if err != nil {
		if errors.Is(err, money.ErrInvalidAmount) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to submit loan"})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
	}
	loans, err := h.uc.List(c.Request().Context(), actor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list loans"})
	}
	return c.JSON(http.StatusOK, listResponse{Count: len(loans), Results: loans})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id, actor)
	if err != nil {
		if errors.Is(err, loanDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch loan"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Withdraw(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	}
	if err := h.uc.Withdraw(c.Request().Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, loanDomain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
		case errors.Is(err, loanDomain.ErrNotOwner):
			return c.JSON(http.StatusForbidden, map[string]string{"detail": "you can only withdraw your own loans"})
		case errors.Is(err, loanDomain.ErrInvalidTransition):
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Only pending loans can be withdrawn."})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to withdraw loan"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) Dashboard(c echo.Context) error {
	counts, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build dashboard"})
	}
	return c.JSON(http.StatusOK, counts)
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
