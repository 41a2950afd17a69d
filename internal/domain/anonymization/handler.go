package anonymization

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
)

// Handler provides HTTP handlers for anonymization runs and the audit trail.
type Handler struct {
	svc *Service
}

// NewHandler creates a new anonymization handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all anonymization routes. The audit surface is
// restricted to operators.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/anonymization", h.Anonymize)

	admin := api.Group("", auth.RequireRole("admin"))
	admin.GET("/anonymization/logs", h.ListLogs)
	admin.GET("/anonymization/stats", h.Stats)
}

func (h *Handler) Anonymize(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The extract always covers the authenticated subject's own records.
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authenticated subject required")
	}
	req.UserID = uid
	result, err := h.svc.Anonymize(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ListLogs(c echo.Context) error {
	filter := LogFilter{
		SubjectPseudonym: c.QueryParam("subject"),
		Purpose:          c.QueryParam("purpose"),
	}
	if raw := c.QueryParam("subject_id"); raw != "" {
		uid, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid subject_id")
		}
		filter.SubjectID = uid
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	logs, err := h.svc.ListLogs(c.Request().Context(), filter, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
