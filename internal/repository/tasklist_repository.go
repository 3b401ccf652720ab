package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

type taskListRepository struct {
	db *sql.DB
}

func NewTaskListRepository(db *sql.DB) domain.TaskListRepository {
	return &taskListRepository{db: db}
}

func (r *taskListRepository) Create(ctx context.Context, list *domain.TaskList) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_lists (id, title, description, created, updated)
		 VALUES ($1, $2, $3, $4, $5)`,
		list.ID, list.Title, list.Description, list.Created, list.Updated,
	)
	return err
}

func (r *taskListRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskList, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, created, updated FROM task_lists WHERE id = $1`, id)

	var list domain.TaskList
	err := row.Scan(&list.ID, &list.Title, &list.Description, &list.Created, &list.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task list %s: %w", id, err)
	}
	return &list, nil
}

func (r *taskListRepository) List(ctx context.Context) ([]domain.TaskList, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, created, updated FROM task_lists ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.TaskList
	for rows.Next() {
		var list domain.TaskList
		if err := rows.Scan(&list.ID, &list.Title, &list.Description, &list.Created, &list.Updated); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

func (r *taskListRepository) Update(ctx context.Context, list *domain.TaskList) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE task_lists SET title = $2, description = $3, updated = $4 WHERE id = $1`,
		list.ID, list.Title, list.Description, list.Updated,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskListNotFound
	}
	return nil
}

// Delete cascades: owned tasks are removed first, then the list, inside one
// transaction so neither side is ever visible without the other. Absent ids
// delete zero rows and succeed.
func (r *taskListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE task_list_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tasks of list %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_lists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task list %s: %w", id, err)
	}

	return tx.Commit()
}
