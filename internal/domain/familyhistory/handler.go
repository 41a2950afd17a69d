package familyhistory

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
	"github.com/pulsevault/pulsevault/pkg/pagination"
)

// Handler provides HTTP handlers for family health history.
type Handler struct {
	svc *Service
}

// NewHandler creates a new family history handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all family history routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/family-history", h.CreateFamilyMember)
	api.GET("/family-history", h.ListFamilyMembers)
	api.GET("/family-history/:id", h.GetFamilyMember)
	api.PUT("/family-history/:id", h.UpdateFamilyMember)
	api.DELETE("/family-history/:id", h.DeleteFamilyMember)
}

func requestUserID(c echo.Context) (uuid.UUID, error) {
	if raw := c.QueryParam("user_id"); raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}

func (h *Handler) CreateFamilyMember(c echo.Context) error {
	var f FamilyMember
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if f.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			f.UserID = uid
		}
	}
	if err := h.svc.CreateFamilyMember(c.Request().Context(), &f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) GetFamilyMember(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	f, err := h.svc.GetFamilyMember(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "family member not found")
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) ListFamilyMembers(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListFamilyMembers(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateFamilyMember(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var f FamilyMember
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f.ID = id
	if err := h.svc.UpdateFamilyMember(c.Request().Context(), &f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) DeleteFamilyMember(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteFamilyMember(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
