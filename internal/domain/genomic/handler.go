package genomic

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
	"github.com/pulsevault/pulsevault/pkg/pagination"
)

// Handler provides HTTP handlers for genomic reports.
type Handler struct {
	svc *Service
}

// NewHandler creates a new genomic report handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all genomic report routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/genomic-reports", h.CreateReport)
	api.GET("/genomic-reports", h.ListReports)
	api.GET("/genomic-reports/:id", h.GetReport)
	api.DELETE("/genomic-reports/:id", h.DeleteReport)
}

func requestUserID(c echo.Context) (uuid.UUID, error) {
	if raw := c.QueryParam("user_id"); raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) CreateReport(c echo.Context) error {
	var r Report
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if r.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			r.UserID = uid
		}
	}
	if err := h.svc.CreateReport(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "genomic report not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListReports(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListReports(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteReport(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
