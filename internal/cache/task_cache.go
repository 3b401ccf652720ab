package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/service"
)

// taskCache decorates a TaskService with the cache store. Every task
// mutation also invalidates the owning list's cached views, because the
// derived completion progress embedded there depends on task state.
type taskCache struct {
	inner service.TaskService
	store *Store
}

func NewTaskService(inner service.TaskService, store *Store) service.TaskService {
	return &taskCache{inner: inner, store: store}
}

func (c *taskCache) Create(ctx context.Context, listID uuid.UUID, in service.CreateTaskInput) (*domain.Task, error) {
	task, err := c.inner.Create(ctx, listID, in)
	if err != nil {
		return nil, err
	}
	c.store.taskMutated(listID, task.ID, task)
	return task, nil
}

func (c *taskCache) Get(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	if t, ok := c.store.getTask(listID, taskID); ok {
		return &t, nil
	}
	task, err := c.inner.Get(ctx, listID, taskID)
	if err != nil {
		return nil, err
	}
	c.store.putTask(*task)
	return task, nil
}

func (c *taskCache) List(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	if tasks, ok := c.store.getTasksByList(listID); ok {
		return tasks, nil
	}
	tasks, err := c.inner.List(ctx, listID)
	if err != nil {
		return nil, err
	}
	c.store.putTasksByList(listID, tasks)
	return tasks, nil
}

func (c *taskCache) Update(ctx context.Context, listID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := c.inner.Update(ctx, listID, taskID, patch)
	if err != nil {
		return nil, err
	}
	c.store.taskMutated(listID, taskID, task)
	return task, nil
}

func (c *taskCache) Delete(ctx context.Context, listID, taskID uuid.UUID) error {
	if err := c.inner.Delete(ctx, listID, taskID); err != nil {
		return err
	}
	c.store.taskMutated(listID, taskID, nil)
	return nil
}
