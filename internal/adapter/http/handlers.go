package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "loanguard-backend"

// Handler serves endpoints that need no use case behind them.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health reports liveness for load balancers and uptime checks.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": serviceName,
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
