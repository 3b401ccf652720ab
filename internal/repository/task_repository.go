package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, task_list_id, title, description, due_date, priority, status, created, updated`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		task.ID, task.TaskListID, task.Title, task.Description,
		task.DueDate, task.Priority, task.Status, task.Created, task.Updated,
	)
	return err
}

func (r *taskRepository) GetByListAndID(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_list_id = $1 AND id = $2`,
		listID, taskID,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s in list %s: %w", taskID, listID, err)
	}
	return task, nil
}

func (r *taskRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_list_id = $1 ORDER BY created`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks of list %s: %w", listID, err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = $3, description = $4, due_date = $5, priority = $6, status = $7, updated = $8
		 WHERE task_list_id = $1 AND id = $2`,
		task.TaskListID, task.ID,
		task.Title, task.Description, task.DueDate, task.Priority, task.Status, task.Updated,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteByListAndID(ctx context.Context, listID, taskID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE task_list_id = $1 AND id = $2`, listID, taskID)
	return err
}

func (r *taskRepository) DeleteAllByList(ctx context.Context, listID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE task_list_id = $1`, listID)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var task domain.Task
	var due sql.NullTime
	err := s.Scan(
		&task.ID, &task.TaskListID, &task.Title, &task.Description,
		&due, &task.Priority, &task.Status, &task.Created, &task.Updated,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		task.DueDate = &due.Time
	}
	return &task, nil
}
