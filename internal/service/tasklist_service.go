package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

// TaskListService owns the business rules of the list aggregate: creation,
// retrieval with derived progress, merge-update and cascade delete.
type TaskListService interface {
	Create(ctx context.Context, title, description string) (*domain.TaskList, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.TaskListDetail, error)
	List(ctx context.Context) ([]domain.TaskListDetail, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskListPatch) (*domain.TaskList, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskListService struct {
	lists domain.TaskListRepository
	tasks domain.TaskRepository
	idgen domain.IDGenerator
	now   func() time.Time
}

func NewTaskListService(lists domain.TaskListRepository, tasks domain.TaskRepository, idgen domain.IDGenerator) TaskListService {
	return &taskListService{
		lists: lists,
		tasks: tasks,
		idgen: idgen,
		now:   time.Now,
	}
}

func (s *taskListService) Create(ctx context.Context, title, description string) (*domain.TaskList, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	now := s.now()
	list := &domain.TaskList{
		ID:          s.idgen.NewID(),
		Title:       title,
		Description: description,
		Created:     now,
		Updated:     now,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}
	return list, nil
}

func (s *taskListService) Get(ctx context.Context, id uuid.UUID) (*domain.TaskListDetail, error) {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetail(ctx, list)
}

func (s *taskListService) List(ctx context.Context) ([]domain.TaskListDetail, error) {
	lists, err := s.lists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	details := make([]domain.TaskListDetail, 0, len(lists))
	for i := range lists {
		detail, err := s.toDetail(ctx, &lists[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *taskListService) Update(ctx context.Context, id uuid.UUID, patch domain.TaskListPatch) (*domain.TaskList, error) {
	existing, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := domain.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
		existing.Title = *patch.Title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	existing.Updated = s.now()

	if err := s.lists.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update task list: %w", err)
	}
	return existing, nil
}

// Delete removes the list and every task it owns in one atomic unit. The
// repository cascades, so there is nothing extra to do here; deleting an
// already-absent id succeeds.
func (s *taskListService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.lists.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	return nil
}

// toDetail loads the list's tasks and derives the completion progress.
// Progress is computed on every read, never persisted.
func (s *taskListService) toDetail(ctx context.Context, list *domain.TaskList) (*domain.TaskListDetail, error) {
	tasks, err := s.tasks.ListByList(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for list %s: %w", list.ID, err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	count, percent := domain.Progress(tasks)
	return &domain.TaskListDetail{
		TaskList: *list,
		Count:    count,
		Progress: percent,
		Tasks:    tasks,
	}, nil
}
