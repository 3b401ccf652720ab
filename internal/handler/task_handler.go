package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/apiserver/internal/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateHandler handles POST /api/v1/task-lists/:list_id/tasks
func (h *TaskHandler) CreateHandler(c echo.Context) error {
	listID, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	in, err := req.toInput()
	if err != nil {
		return respondServiceError(c, err)
	}

	task, err := h.svc.Create(c.Request().Context(), listID, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ListHandler handles GET /api/v1/task-lists/:list_id/tasks
func (h *TaskHandler) ListHandler(c echo.Context) error {
	listID, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}

	tasks, err := h.svc.List(c.Request().Context(), listID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetHandler handles GET /api/v1/task-lists/:list_id/tasks/:task_id
func (h *TaskHandler) GetHandler(c echo.Context) error {
	listID, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}
	taskID, err := parseIDParam(c, "task_id")
	if err != nil {
		return err
	}

	task, err := h.svc.Get(c.Request().Context(), listID, taskID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateHandler handles PUT /api/v1/task-lists/:list_id/tasks/:task_id
func (h *TaskHandler) UpdateHandler(c echo.Context) error {
	listID, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}
	taskID, err := parseIDParam(c, "task_id")
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	patch, err := req.toPatch()
	if err != nil {
		return respondServiceError(c, err)
	}

	task, err := h.svc.Update(c.Request().Context(), listID, taskID, patch)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteHandler handles DELETE /api/v1/task-lists/:list_id/tasks/:task_id
func (h *TaskHandler) DeleteHandler(c echo.Context) error {
	listID, err := parseIDParam(c, "list_id")
	if err != nil {
		return err
	}
	taskID, err := parseIDParam(c, "task_id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), listID, taskID); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
