package middleware

import (
	"github.com/labstack/echo/v4"

	"winsbygroup.com/appmachineid/internal/version"
)

const VersionHeader = "X-AppMachineID-Version"

// Version stamps every response with the server version.
func Version() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(VersionHeader, version.Version)
			return next(c)
		}
	}
}
