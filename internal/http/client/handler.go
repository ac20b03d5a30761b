package client

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"winsbygroup.com/appmachineid/internal/application"
	"winsbygroup.com/appmachineid/internal/appspecific"
	"winsbygroup.com/appmachineid/internal/machineid"
)

type Handler struct {
	AppSpecificService *appspecific.Service
}

func NewHandler(a *appspecific.Service) *Handler {
	return &Handler{AppSpecificService: a}
}

// GET /app-specific/:app_id
func (h *Handler) GetAppSpecific(c echo.Context) error {
	appID := c.Param("app_id")
	if appID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "missing app id",
		})
	}

	res, err := h.AppSpecificService.GetString(c.Request().Context(), appID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

// GET /apps/:name/machine-id
func (h *Handler) GetForApp(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "missing application name",
		})
	}

	res, err := h.AppSpecificService.GetByName(c.Request().Context(), name)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

// errorJSON maps service errors onto status codes. A missing or malformed
// machine id is a host problem, so it is reported as a server error.
func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, machineid.ErrInvalidAppID), errors.Is(err, machineid.ErrInvalidLength):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		status = http.StatusNotFound
		msg = "application not found"
	}

	return c.JSON(status, map[string]string{
		"error": msg,
	})
}
