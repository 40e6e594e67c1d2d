package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireUUIDParam rejects requests whose path parameter is not a UUID.
// onInvalid writes the response for a rejected request.
func RequireUUIDParam(param string, onInvalid echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := uuid.Parse(c.Param(param)); err != nil {
				return onInvalid(c)
			}
			return next(c)
		}
	}
}
