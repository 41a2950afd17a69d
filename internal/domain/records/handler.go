package records

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
	"github.com/pulsevault/pulsevault/pkg/pagination"
)

// Handler provides HTTP handlers for the records domain.
type Handler struct {
	svc *Service
}

// NewHandler creates a new records handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all record routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/health-records", h.CreateHealthRecord)
	api.GET("/health-records", h.ListHealthRecords)
	api.GET("/health-records/:id", h.GetHealthRecord)
	api.PUT("/health-records/:id", h.UpdateHealthRecord)
	api.DELETE("/health-records/:id", h.DeleteHealthRecord)

	api.POST("/medical-records", h.CreateMedicalRecord)
	api.GET("/medical-records", h.ListMedicalRecords)
	api.GET("/medical-records/:id", h.GetMedicalRecord)
	api.PUT("/medical-records/:id", h.UpdateMedicalRecord)
	api.DELETE("/medical-records/:id", h.DeleteMedicalRecord)

	api.POST("/medications", h.CreateMedication)
	api.GET("/medications", h.ListMedications)
	api.GET("/medications/:id", h.GetMedication)
	api.PUT("/medications/:id", h.UpdateMedication)
	api.DELETE("/medications/:id", h.DeleteMedication)

	api.POST("/test-results", h.CreateTestResult)
	api.GET("/test-results", h.ListTestResults)
	api.GET("/test-results/:id", h.GetTestResult)
	api.PUT("/test-results/:id", h.UpdateTestResult)
	api.DELETE("/test-results/:id", h.DeleteTestResult)
}

func requestUserID(c echo.Context) (uuid.UUID, error) {
	if raw := c.QueryParam("user_id"); raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}

func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// -- Health records --

func (h *Handler) CreateHealthRecord(c echo.Context) error {
	var r HealthRecord
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if r.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			r.UserID = uid
		}
	}
	if err := h.svc.CreateHealthRecord(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetHealthRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetHealthRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "health record not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListHealthRecords(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListHealthRecords(c.Request().Context(), uid, c.QueryParam("record_type"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateHealthRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var r HealthRecord
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.ID = id
	if err := h.svc.UpdateHealthRecord(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteHealthRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteHealthRecord(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Medical records --

func (h *Handler) CreateMedicalRecord(c echo.Context) error {
	var r MedicalRecord
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if r.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			r.UserID = uid
		}
	}
	if err := h.svc.CreateMedicalRecord(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetMedicalRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetMedicalRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medical record not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListMedicalRecords(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListMedicalRecords(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateMedicalRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var r MedicalRecord
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.ID = id
	if err := h.svc.UpdateMedicalRecord(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteMedicalRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteMedicalRecord(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Medications --

func (h *Handler) CreateMedication(c echo.Context) error {
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			m.UserID = uid
		}
	}
	if err := h.svc.CreateMedication(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetMedication(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.GetMedication(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	activeOnly := c.QueryParam("active") == "true"
	items, total, err := h.svc.ListMedications(c.Request().Context(), uid, activeOnly, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateMedication(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.ID = id
	if err := h.svc.UpdateMedication(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMedication(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteMedication(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Test results --

func (h *Handler) CreateTestResult(c echo.Context) error {
	var r TestResult
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if r.UserID == uuid.Nil {
		if uid, err := requestUserID(c); err == nil {
			r.UserID = uid
		}
	}
	if err := h.svc.CreateTestResult(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetTestResult(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetTestResult(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "test result not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListTestResults(c echo.Context) error {
	uid, err := requestUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListTestResults(c.Request().Context(), uid, c.QueryParam("test_name"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateTestResult(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var r TestResult
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.ID = id
	if err := h.svc.UpdateTestResult(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteTestResult(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteTestResult(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
