package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cashflow/payments-api/internal/adapter/secondary/token"
)

const userIDContextKey = "user_id"

// JWTAuth returns middleware that requires a valid bearer token on every
// request. The authenticated user ID is stored on the echo context.
func JWTAuth(verifier *token.JWTIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    ErrCodeUnauthorized,
					Message: msgUnauthorized,
				})
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			userID, err := verifier.Verify(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    ErrCodeUnauthorized,
					Message: "Invalid or expired auth token",
				})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}
