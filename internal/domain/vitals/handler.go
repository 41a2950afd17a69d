package vitals

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
	"github.com/pulsevault/pulsevault/pkg/pagination"
)

// Handler provides HTTP handlers for the vital signs domain.
type Handler struct {
	svc *Service
}

// NewHandler creates a new vital signs handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all vital signs routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/vitals", h.CreateVitalSign)
	api.POST("/vitals/batch", h.CreateBatch)
	api.GET("/vitals", h.ListVitalSigns)
	api.GET("/vitals/latest", h.LatestByType)
	api.GET("/vitals/trends", h.DailyAverages)
	api.GET("/vitals/:id", h.GetVitalSign)
	api.PUT("/vitals/:id", h.UpdateVitalSign)
	api.DELETE("/vitals/:id", h.DeleteVitalSign)
}

// requestUserID resolves the user a request operates on: an explicit user_id
// query parameter wins, otherwise the authenticated subject is used.
func requestUserID(c echo.Context) (uuid.UUID, error) {
	if raw := c.QueryParam("user_id"); raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) CreateVitalSign(c echo.Context) error {
	var v VitalSign
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if v.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			v.UserID = uid
		}
	}
	if err := h.svc.CreateVitalSign(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) CreateBatch(c echo.Context) error {
	var batch []*VitalSign
	if err := c.Bind(&batch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBatch(c.Request().Context(), batch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]int{"created": len(batch)})
}

func (h *Handler) GetVitalSign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.GetVitalSign(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "vital sign not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVitalSigns(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListVitalSigns(c.Request().Context(), uid, c.QueryParam("type"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) LatestByType(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	items, err := h.svc.LatestByType(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DailyAverages(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	items, err := h.svc.DailyAverages(c.Request().Context(), uid, c.QueryParam("type"), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateVitalSign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var v VitalSign
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	if err := h.svc.UpdateVitalSign(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteVitalSign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteVitalSign(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
