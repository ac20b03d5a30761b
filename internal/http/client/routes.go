package client

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all client-facing endpoints under the given Echo group.
func RegisterRoutes(g *echo.Group, h *Handler) {

	// Derive for an explicit application id
	g.GET("/app-specific/:app_id", h.GetAppSpecific)

	// Derive for a registered application
	g.GET("/apps/:name/machine-id", h.GetForApp)
}
