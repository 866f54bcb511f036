// Package middleware holds the request middleware for the API layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CredentialKey is the context key the bearer credential is stored under.
const CredentialKey = "credential"

// Credential extracts the bearer token from the Authorization header and
// stores it on the request context for handlers. It only checks the header
// shape; whether the credential is live is decided by the core when the
// handler invokes a service.
func Credential() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be of the form 'Bearer <token>'")
			}

			c.Set(CredentialKey, parts[1])
			return next(c)
		}
	}
}
