package admin

import "github.com/labstack/echo/v4"

func RegisterRoutes(g *echo.Group, h *Handler) {

	// Application registry
	g.GET("/applications", h.GetApplications)
	g.GET("/applications/:id", h.GetApplication)
	g.GET("/applications/uuid/:uuid", h.GetApplicationByUUID)
	g.POST("/applications", h.CreateApplication)
	g.PUT("/applications/:id", h.UpdateApplication)
	g.DELETE("/applications/:id", h.DeleteApplication)

	// Database backup
	g.POST("/backup", h.CreateBackup)
}
