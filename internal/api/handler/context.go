package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/api/middleware"
)

// ctxCredential returns the bearer credential placed on the context by the
// auth middleware. Empty when the route is unprotected.
func ctxCredential(c echo.Context) string {
	cred, _ := c.Get(middleware.CredentialKey).(string)
	return cred
}

// intQueryParam parses a required integer query parameter.
func intQueryParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
