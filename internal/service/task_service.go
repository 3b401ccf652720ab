package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/logger"
)

// CreateTaskInput is the caller-supplied portion of a new task. Status is
// never accepted from the caller; every task starts OPEN. A nil Priority
// defaults to LOW.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    *domain.TaskPriority
}

// TaskService owns the business rules of tasks within a list.
type TaskService interface {
	Create(ctx context.Context, listID uuid.UUID, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, listID uuid.UUID) ([]domain.Task, error)
	Update(ctx context.Context, listID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, listID, taskID uuid.UUID) error
}

// TaskIndexer mirrors task mutations into a secondary search index. The
// store remains the system of record; index failures are logged and never
// surfaced to the caller.
type TaskIndexer interface {
	IndexTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

type taskService struct {
	lists   domain.TaskListRepository
	tasks   domain.TaskRepository
	idgen   domain.IDGenerator
	indexer TaskIndexer
	now     func() time.Time
}

// NewTaskService wires the task aggregate. indexer may be nil when search
// is not deployed.
func NewTaskService(lists domain.TaskListRepository, tasks domain.TaskRepository, idgen domain.IDGenerator, indexer TaskIndexer) TaskService {
	return &taskService{
		lists:   lists,
		tasks:   tasks,
		idgen:   idgen,
		indexer: indexer,
		now:     time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, listID uuid.UUID, in CreateTaskInput) (*domain.Task, error) {
	// Parent existence is checked here, exactly once. A list deleted
	// concurrently after this point is an accepted race.
	if _, err := s.lists.GetByID(ctx, listID); err != nil {
		return nil, err
	}
	if err := domain.ValidateTitle(in.Title); err != nil {
		return nil, err
	}

	priority := domain.PriorityLow
	if in.Priority != nil {
		priority = *in.Priority
	}

	now := s.now()
	task := &domain.Task{
		ID:          s.idgen.NewID(),
		TaskListID:  listID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Status:      domain.StatusOpen,
		Created:     now,
		Updated:     now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.index(ctx, *task)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetByListAndID(ctx, listID, taskID)
}

// List returns the tasks owned by listID. A missing list yields an empty
// slice rather than an error (tolerant read).
func (s *taskService) List(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByList(ctx, listID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, listID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	existing, err := s.tasks.GetByListAndID(ctx, listID, taskID)
	if err != nil {
		return nil, err
	}

	// A past due date rejects the whole patch before any field is applied,
	// the non-date fields included.
	if patch.DueDate != nil && patch.DueDate.Before(s.now()) {
		return nil, &domain.ValidationError{Code: domain.CodeDueDatePast, Message: "due date cannot be in the past"}
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
	if patch.DueDate != nil {
		existing.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		existing.Priority = *patch.Priority
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	existing.Updated = s.now()

	if err := s.tasks.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.index(ctx, *existing)
	return existing, nil
}

// Delete removes the single task matching the composite key; deleting an
// absent task succeeds.
func (s *taskService) Delete(ctx context.Context, listID, taskID uuid.UUID) error {
	if err := s.tasks.DeleteByListAndID(ctx, listID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if s.indexer != nil {
		if err := s.indexer.DeleteTask(ctx, taskID); err != nil {
			logger.WarnLog(ctx, "search index delete failed for task %s: %v", taskID, err)
		}
	}
	return nil
}

func (s *taskService) index(ctx context.Context, task domain.Task) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexTask(ctx, task); err != nil {
		logger.WarnLog(ctx, "search index write failed for task %s: %v", task.ID, err)
	}
}
