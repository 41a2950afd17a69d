package dashboard

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
)

// Handler provides HTTP handlers for the dashboard.
type Handler struct {
	svc *Service
}

// NewHandler creates a new dashboard handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/summary", h.Summary)
	api.GET("/dashboard/trends", h.Trend)
}

func requestUserID(c echo.Context) (uuid.UUID, error) {
	if raw := c.QueryParam("user_id"); raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) Summary(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	summary, err := h.svc.Summary(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) Trend(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	vitalType := c.QueryParam("type")
	if vitalType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "type is required")
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	trend, err := h.svc.Trend(c.Request().Context(), uid, vitalType, days)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, trend)
}
