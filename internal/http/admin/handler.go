package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"winsbygroup.com/appmachineid/internal/application"
	"winsbygroup.com/appmachineid/internal/backup"
)

type Handler struct {
	apps   *application.Service
	backup *backup.Service
}

func NewHandler(apps *application.Service, backupSvc *backup.Service) *Handler {
	return &Handler{apps: apps, backup: backupSvc}
}

// Applications

func (h *Handler) GetApplications(c echo.Context) error {
	out, err := h.apps.GetAll(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetApplication(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badID(c)
	}
	out, err := h.apps.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetApplicationByUUID(c echo.Context) error {
	out, err := h.apps.GetByUUID(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateApplication(c echo.Context) error {
	var req CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	out, err := h.apps.Create(c.Request().Context(), &application.Application{
		AppName:     req.Name,
		AppUUID:     req.UUID,
		Description: req.Description,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateApplication(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badID(c)
	}

	var req UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	err = h.apps.Update(c.Request().Context(), &application.Application{
		ApplicationID: id,
		AppName:       req.Name,
		AppUUID:       req.UUID,
		Description:   req.Description,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteApplication(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badID(c)
	}
	if err := h.apps.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Backup

func (h *Handler) CreateBackup(c echo.Context) error {
	if h.backup == nil {
		return c.JSON(http.StatusNotImplemented, map[string]string{"error": "backups not configured"})
	}
	res, err := h.backup.CreateBackup(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, res)
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
}

func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrDuplicate):
		status = http.StatusConflict
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
