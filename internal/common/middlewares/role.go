package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole is the page-level gate: the handler only runs when the token
// role is one of the allowed values. Everyone else gets a restriction notice.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Missing or invalid JWT claims",
					"data":    nil,
				})
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"status":  http.StatusForbidden,
				"message": "Access Restricted",
				"data":    nil,
			})
		}
	}
}
