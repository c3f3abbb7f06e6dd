package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanguard-backend/internal/adapter/middleware"
	loanDomain "loanguard-backend/internal/domain/loan"
	userDomain "loanguard-backend/internal/domain/user"
	approvalUC "loanguard-backend/internal/usecase/approval"
	fraudUC "loanguard-backend/internal/usecase/fraud"
	loanUC "loanguard-backend/internal/usecase/loan"
)

type AdminHandler struct {
	approvals *approvalUC.Usecase
	fraud     *fraudUC.Usecase
}

func NewAdminHandler(approvals *approvalUC.Usecase, fraud *fraudUC.Usecase) *AdminHandler {
	return &AdminHandler{approvals: approvals, fraud: fraud}
}

type flagRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}

type decisionFunc func(ctx context.Context, loanID uint64, actor userDomain.Actor) (*loanUC.LoanDTO, error)

func (h *AdminHandler) Approve(c echo.Context) error {
	return h.decide(c, h.approvals.Approve)
}

func (h *AdminHandler) Reject(c echo.Context) error {
	return h.decide(c, h.approvals.Reject)
}

func (h *AdminHandler) decide(c echo.Context, act decisionFunc) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	}
	dto, err := act(c.Request().Context(), id, actor)
	if err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) Flag(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	}

	var req flagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.approvals.Flag(c.Request().Context(), id, actor, req.Reason)
	if err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) decisionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, userDomain.ErrNotAdmin):
		return c.JSON(http.StatusForbidden, map[string]string{"detail": "admin privileges required"})
	case errors.Is(err, loanDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, loanDomain.ErrInvalidTransition):
		return c.JSON(http.StatusForbidden, map[string]string{"detail": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update loan"})
}

func (h *AdminHandler) ListFlagged(c echo.Context) error {
	loans, err := h.fraud.ListFlagged(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list flagged loans"})
	}
	return c.JSON(http.StatusOK, listResponse{Count: len(loans), Results: loans})
}

func (h *AdminHandler) ListFlaggedHistory(c echo.Context) error {
	loans, err := h.fraud.ListFlaggedHistory(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list flagged loans"})
	}
	return c.JSON(http.StatusOK, listResponse{Count: len(loans), Results: loans})
}
