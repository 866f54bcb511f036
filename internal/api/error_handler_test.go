package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flockr/messaging-system/internal/core/domain"
)

func dispatch(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_InvalidInput(t *testing.T) {
	rec := dispatch(t, domain.InvalidInputf("channel id is not valid"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "channel id is not valid" {
		t.Fatalf("unexpected message: %q", resp["error"])
	}
}

func TestErrorHandler_Unauthorized(t *testing.T) {
	rec := dispatch(t, domain.Unauthorizedf("invalid token"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	rec := dispatch(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "missing authorization header" {
		t.Fatalf("unexpected message: %q", resp["error"])
	}
}

func TestErrorHandler_UnexpectedErrorIsMasked(t *testing.T) {
	rec := dispatch(t, errors.New("sensitive internal detail"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "internal server error" {
		t.Fatalf("internal details must not leak: %q", resp["error"])
	}
}
