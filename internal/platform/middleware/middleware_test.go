package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pulsevault/pulsevault/internal/platform/auth"
)

func TestRequestID_GeneratesNew(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		rid := c.Get("request_id").(string)
		if rid == "" {
			t.Error("expected request_id to be generated")
		}
		return c.String(http.StatusOK, "ok")
	}

	mw := RequestID()
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		rid := c.Get("request_id").(string)
		if rid != "my-custom-id" {
			t.Errorf("expected my-custom-id, got %s", rid)
		}
		return c.String(http.StatusOK, "ok")
	}

	mw := RequestID()
	h := mw(handler)
	h(c)

	if rec.Header().Get(RequestIDHeader) != "my-custom-id" {
		t.Errorf("expected my-custom-id in response header, got %s", rec.Header().Get(RequestIDHeader))
	}
}

func TestLogger_LogsRequest(t *testing.T) {
	logger := zerolog.New(os.Stderr).With().Logger()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := Logger(logger)
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecovery_RecoversPanic(t *testing.T) {
	logger := zerolog.Nop()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		panic("boom")
	}

	mw := Recovery(logger)
	h := mw(handler)
	if err := h(c); err == nil {
		t.Fatal("expected error from recovered panic")
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := SecurityHeaders()
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected X-Content-Type-Options header")
	}
	if rec.Header().Get("X-Frame-Options") == "" {
		t.Error("expected X-Frame-Options header")
	}
}

func TestAccessLog_RecordsAPIRequests(t *testing.T) {
	logger := zerolog.Nop()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vitals", nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, "user-1")
	ctx = context.WithValue(ctx, auth.UserRolesKey, []string{"admin"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var recorded []AccessEntry
	recorder := AccessRecorderFunc(func(entry AccessEntry) error {
		recorded = append(recorded, entry)
		return nil
	})

	handler := func(c echo.Context) error {
		return c.String(http.StatusCreated, "ok")
	}

	mw := AccessLog(logger, recorder)
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recorded) != 1 {
		t.Fatalf("expected 1 access entry, got %d", len(recorded))
	}
	entry := recorded[0]
	if entry.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", entry.UserID)
	}
	if entry.Action != "create" {
		t.Errorf("expected action create, got %s", entry.Action)
	}
	if entry.ResourceType != "vitals" {
		t.Errorf("expected resource vitals, got %s", entry.ResourceType)
	}
}

func TestAccessLog_SkipsNonAPIRoutes(t *testing.T) {
	logger := zerolog.Nop()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var recorded []AccessEntry
	recorder := AccessRecorderFunc(func(entry AccessEntry) error {
		recorded = append(recorded, entry)
		return nil
	})

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := AccessLog(logger, recorder)
	h := mw(handler)
	h(c)

	if len(recorded) != 0 {
		t.Errorf("expected no access entries for non-API route, got %d", len(recorded))
	}
}

func TestRequestTimeout_FastHandlerPasses(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := RequestTimeout(time.Second)
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestTimeout_SlowHandlerTimesOut(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		<-c.Request().Context().Done()
		return c.Request().Context().Err()
	}

	mw := RequestTimeout(10 * time.Millisecond)
	h := mw(handler)
	err := h(c)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %v", err)
	}
}

func TestHTTPMethodToAction(t *testing.T) {
	cases := map[string]string{
		http.MethodGet:    "read",
		http.MethodPost:   "create",
		http.MethodPut:    "update",
		http.MethodDelete: "delete",
		"OPTIONS":         "read",
	}
	for method, want := range cases {
		if got := httpMethodToAction(method); got != want {
			t.Errorf("%s: expected %s, got %s", method, want, got)
		}
	}
}

func TestExtractResourceType(t *testing.T) {
	cases := map[string]string{
		"/api/v1/vitals/123":        "vitals",
		"/api/v1/anonymization":     "anonymization",
		"/api/v1/medical-records":   "medical-records",
		"/api/v1/":                  "unknown",
		"/api/v1/devices/sync":      "devices",
		"/api/v1/dashboard/summary": "dashboard",
	}
	for path, want := range cases {
		if got := extractResourceType(path); got != want {
			t.Errorf("%s: expected %s, got %s", path, want, got)
		}
	}
}
