package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/apiserver/internal/report"
	"github.com/taskforge/apiserver/internal/service"
	"github.com/taskforge/apiserver/internal/service/serviceutils"
)

type ReportHandler struct {
	svc      service.TaskListService
	exporter *report.Exporter
}

func NewReportHandler(svc service.TaskListService, exporter *report.Exporter) *ReportHandler {
	return &ReportHandler{svc: svc, exporter: exporter}
}

// ExportHandler handles GET /api/v1/task-lists/export, streaming an .xlsx
// overview of every list with its task count and completion percentage.
func (h *ReportHandler) ExportHandler(c echo.Context) error {
	lists, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "failed to load task lists", err)
	}

	filename := fmt.Sprintf("task_lists_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

	return h.exporter.WriteTo(c.Response().Writer, lists)
}
