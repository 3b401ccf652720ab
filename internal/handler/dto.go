package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/logger"
	"github.com/taskforge/apiserver/internal/service"
	"github.com/taskforge/apiserver/internal/service/serviceutils"
)

type CreateTaskListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskListRequest is a merge patch: absent fields leave the stored
// value untouched.
type UpdateTaskListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
}

// UpdateTaskRequest is a merge patch over every mutable task field.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
}

func (r CreateTaskRequest) toInput() (service.CreateTaskInput, error) {
	in := service.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		p, err := domain.ParsePriority(*r.Priority)
		if err != nil {
			return service.CreateTaskInput{}, err
		}
		in.Priority = &p
	}
	return in, nil
}

func (r UpdateTaskRequest) toPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		p, err := domain.ParsePriority(*r.Priority)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Priority = &p
	}
	if r.Status != nil {
		s, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Status = &s
	}
	return patch, nil
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// respondServiceError maps the domain error taxonomy onto HTTP: validation
// failures become 400 with the reason code, lookup failures 404, anything
// else a logged 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return serviceutils.ResponseValidationError(c, http.StatusBadRequest, domain.ValidationCode(err), err)
	case errors.Is(err, domain.ErrNotFound):
		return serviceutils.ResponseError(c, http.StatusNotFound, "not found", err)
	default:
		logger.ErrorLog(c.Request().Context(), "request failed: %v", err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "internal error", err)
	}
}
