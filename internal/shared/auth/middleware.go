package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const userIDContextKey = "auth.userId"

// RequireCustomer rejects requests without a valid customer token and stores
// the authenticated userId on the echo context.
func RequireCustomer(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request(), "token")
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Missing token."})
			}
			claims, err := validator.Validate(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired token."})
			}
			c.Set(userIDContextKey, claims.Subject)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose bearer token was not issued to the
// configured admin identity.
func RequireAdmin(admins *AdminTokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerTokenFromHeader(c.Request().Header.Get("Authorization"))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Missing token."})
			}
			if err := admins.Verify(token); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired token."})
			}
			return next(c)
		}
	}
}

// UserID returns the userId stored by RequireCustomer, or an empty string on
// unauthenticated routes.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
