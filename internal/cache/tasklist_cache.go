package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/service"
)

// taskListCache decorates a TaskListService with the cache store. Misses
// fall through and populate; mutations invalidate or replace per the
// consistency contract.
type taskListCache struct {
	inner service.TaskListService
	store *Store
}

func NewTaskListService(inner service.TaskListService, store *Store) service.TaskListService {
	return &taskListCache{inner: inner, store: store}
}

func (c *taskListCache) Create(ctx context.Context, title, description string) (*domain.TaskList, error) {
	list, err := c.inner.Create(ctx, title, description)
	if err != nil {
		return nil, err
	}
	c.store.invalidateAllLists()
	return list, nil
}

func (c *taskListCache) Get(ctx context.Context, id uuid.UUID) (*domain.TaskListDetail, error) {
	if d, ok := c.store.getListDetail(id); ok {
		return &d, nil
	}
	detail, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.putListDetail(*detail)
	return detail, nil
}

func (c *taskListCache) List(ctx context.Context) ([]domain.TaskListDetail, error) {
	if lists, ok := c.store.getAllLists(); ok {
		return lists, nil
	}
	lists, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store.putAllLists(lists)
	return lists, nil
}

func (c *taskListCache) Update(ctx context.Context, id uuid.UUID, patch domain.TaskListPatch) (*domain.TaskList, error) {
	list, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.store.replaceListEntity(*list)
	return list, nil
}

func (c *taskListCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	// The cascade removed the tasks too.
	c.store.invalidateList(id)
	c.store.dropListTasks(id)
	return nil
}
