package domain

import (
	"context"

	"github.com/google/uuid"
)

// TaskListRepository is the durable store contract for lists.
//
// Delete cascades: it removes every task owned by the list and the list
// itself inside one atomic unit, so a reader can never observe the list
// gone with its tasks remaining or vice versa. Deleting an absent id is a
// no-op.
type TaskListRepository interface {
	Create(ctx context.Context, list *TaskList) error
	GetByID(ctx context.Context, id uuid.UUID) (*TaskList, error)
	List(ctx context.Context) ([]TaskList, error)
	Update(ctx context.Context, list *TaskList) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository is the durable store contract for tasks. All single-task
// operations are composite lookups keyed by both the task id and its
// claimed parent id, so a task id paired with the wrong list id behaves as
// absent rather than leaking a cross-list read.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByListAndID(ctx context.Context, listID, taskID uuid.UUID) (*Task, error)
	ListByList(ctx context.Context, listID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	DeleteByListAndID(ctx context.Context, listID, taskID uuid.UUID) error
	DeleteAllByList(ctx context.Context, listID uuid.UUID) error
}
