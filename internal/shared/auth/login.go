package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler exchanges the configured admin credentials for a bearer token.
func LoginHandler(admins *AdminTokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Validation failed."})
		}
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email and password are required."})
		}
		token, err := admins.Login(req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials."})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Login successful.", "token": token})
	}
}
