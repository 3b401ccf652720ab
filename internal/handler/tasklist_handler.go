package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/service"
)

type TaskListHandler struct {
	svc service.TaskListService
}

func NewTaskListHandler(svc service.TaskListService) *TaskListHandler {
	return &TaskListHandler{svc: svc}
}

// CreateHandler handles POST /api/v1/task-lists
func (h *TaskListHandler) CreateHandler(c echo.Context) error {
	var req CreateTaskListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	list, err := h.svc.Create(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

// ListHandler handles GET /api/v1/task-lists
func (h *TaskListHandler) ListHandler(c echo.Context) error {
	lists, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	if lists == nil {
		lists = []domain.TaskListDetail{}
	}
	return c.JSON(http.StatusOK, lists)
}

// GetHandler handles GET /api/v1/task-lists/:list_id
func (h *TaskListHandler) GetHandler(c echo.Context) error {
	id, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}

	detail, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateHandler handles PUT /api/v1/task-lists/:list_id
func (h *TaskListHandler) UpdateHandler(c echo.Context) error {
	id, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}

	var req UpdateTaskListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	list, err := h.svc.Update(c.Request().Context(), id, domain.TaskListPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteHandler handles DELETE /api/v1/task-lists/:list_id
func (h *TaskListHandler) DeleteHandler(c echo.Context) error {
	id, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
