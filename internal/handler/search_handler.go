package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/search"
	"github.com/taskforge/apiserver/internal/service/serviceutils"
)

// TaskSearcher is the slice of the search index the handlers need.
// Satisfied by *search.Indexer.
type TaskSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.SearchResult, error)
	Reindex(ctx context.Context, tasks domain.TaskRepository, lists []domain.TaskList) (int, error)
}

type SearchHandler struct {
	searcher TaskSearcher
	lists    domain.TaskListRepository
	tasks    domain.TaskRepository
}

// NewSearchHandler takes the repositories directly: a reindex must rebuild
// from the store of record, bypassing any cache layer.
func NewSearchHandler(searcher TaskSearcher, lists domain.TaskListRepository, tasks domain.TaskRepository) *SearchHandler {
	return &SearchHandler{searcher: searcher, lists: lists, tasks: tasks}
}

// SearchHandler handles GET /api/v1/tasks/_search?q=...&limit=...
func (h *SearchHandler) SearchHandler(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query parameter q")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := h.searcher.Search(c.Request().Context(), q, limit)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "search failed", err)
	}
	return c.JSON(http.StatusOK, results)
}

// ReindexHandler handles POST /api/v1/tasks/_reindex, rebuilding the task
// index from the store.
func (h *SearchHandler) ReindexHandler(c echo.Context) error {
	ctx := c.Request().Context()

	lists, err := h.lists.List(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "failed to load task lists", err)
	}

	indexed, err := h.searcher.Reindex(ctx, h.tasks, lists)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "reindex failed", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "reindex complete", map[string]int{"indexed": indexed})
}
