package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ophthalmoai/saas-backend/pkg/utils"
)

// ContextKeyClaims is the echo context key holding the parsed *utils.Claims.
const ContextKeyClaims = "claims"

// JWTMiddleware validates the Bearer token and stores its claims in the
// request context.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Authorization header missing",
					"data":    nil,
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Invalid authorization header",
					"data":    nil,
				})
			}
			claims, err := utils.ValidateJWTToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Invalid token: " + err.Error(),
					"data":    nil,
				})
			}
			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims stored by JWTMiddleware, or nil.
func ClaimsFromContext(c echo.Context) *utils.Claims {
	claims, _ := c.Get(ContextKeyClaims).(*utils.Claims)
	return claims
}
