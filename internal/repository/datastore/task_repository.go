package datastore

import (
	"context"
	"errors"
	"fmt"

	ds "cloud.google.com/go/datastore"
	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

type TaskRepository struct {
	client *ds.Client
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.client.Put(ctx, taskKey(task.TaskListID, task.ID), toTaskRecord(task))
	return err
}

func (r *TaskRepository) GetByListAndID(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	// The ancestor key encodes both ids, so a wrong list id misses.
	var rec taskRecord
	err := r.client.Get(ctx, taskKey(listID, taskID), &rec)
	if errors.Is(err, ds.ErrNoSuchEntity) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s in list %s: %w", taskID, listID, err)
	}
	return fromTaskRecord(listID, taskID, &rec), nil
}

func (r *TaskRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	query := ds.NewQuery(kindTask).Ancestor(listKey(listID)).Order("created")

	var recs []taskRecord
	keys, err := r.client.GetAll(ctx, query, &recs)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks of list %s: %w", listID, err)
	}

	tasks := make([]domain.Task, 0, len(recs))
	for i, key := range keys {
		id, err := uuid.Parse(key.Name)
		if err != nil {
			return nil, fmt.Errorf("malformed task key %q: %w", key.Name, err)
		}
		tasks = append(tasks, *fromTaskRecord(listID, id, &recs[i]))
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	_, err := r.client.RunInTransaction(ctx, func(tx *ds.Transaction) error {
		key := taskKey(task.TaskListID, task.ID)
		var existing taskRecord
		if err := tx.Get(key, &existing); err != nil {
			return err
		}
		_, err := tx.Put(key, toTaskRecord(task))
		return err
	})
	if errors.Is(err, ds.ErrNoSuchEntity) {
		return domain.ErrTaskNotFound
	}
	return err
}

func (r *TaskRepository) DeleteByListAndID(ctx context.Context, listID, taskID uuid.UUID) error {
	return r.client.Delete(ctx, taskKey(listID, taskID))
}

func (r *TaskRepository) DeleteAllByList(ctx context.Context, listID uuid.UUID) error {
	keys, err := r.client.GetAll(ctx, ds.NewQuery(kindTask).Ancestor(listKey(listID)).KeysOnly(), nil)
	if err != nil {
		return fmt.Errorf("failed to collect tasks of list %s: %w", listID, err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.DeleteMulti(ctx, keys)
}
