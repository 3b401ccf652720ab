package datastore

import (
	"context"
	"errors"
	"fmt"

	ds "cloud.google.com/go/datastore"
	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

type TaskListRepository struct {
	client *ds.Client
}

func (r *TaskListRepository) Create(ctx context.Context, list *domain.TaskList) error {
	_, err := r.client.Put(ctx, listKey(list.ID), toListRecord(list))
	return err
}

func (r *TaskListRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskList, error) {
	var rec taskListRecord
	err := r.client.Get(ctx, listKey(id), &rec)
	if errors.Is(err, ds.ErrNoSuchEntity) {
		return nil, domain.ErrTaskListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task list %s: %w", id, err)
	}
	return fromListRecord(id, &rec), nil
}

func (r *TaskListRepository) List(ctx context.Context) ([]domain.TaskList, error) {
	query := ds.NewQuery(kindTaskList).Order("created")

	var recs []taskListRecord
	keys, err := r.client.GetAll(ctx, query, &recs)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	lists := make([]domain.TaskList, 0, len(recs))
	for i, key := range keys {
		id, err := uuid.Parse(key.Name)
		if err != nil {
			return nil, fmt.Errorf("malformed task list key %q: %w", key.Name, err)
		}
		lists = append(lists, *fromListRecord(id, &recs[i]))
	}
	return lists, nil
}

// Update reads and writes inside one transaction so a concurrent update
// never interleaves with the merge.
func (r *TaskListRepository) Update(ctx context.Context, list *domain.TaskList) error {
	_, err := r.client.RunInTransaction(ctx, func(tx *ds.Transaction) error {
		key := listKey(list.ID)
		var existing taskListRecord
		if err := tx.Get(key, &existing); err != nil {
			return err
		}
		_, err := tx.Put(key, toListRecord(list))
		return err
	})
	if errors.Is(err, ds.ErrNoSuchEntity) {
		return domain.ErrTaskListNotFound
	}
	return err
}

// Delete cascades to owned tasks. The child keys are gathered with a
// keys-only ancestor query, then removed together with the list in one
// transaction. A task created under the list between the query and the
// commit is the accepted create/delete race.
func (r *TaskListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	parent := listKey(id)
	taskKeys, err := r.client.GetAll(ctx, ds.NewQuery(kindTask).Ancestor(parent).KeysOnly(), nil)
	if err != nil {
		return fmt.Errorf("failed to collect tasks of list %s: %w", id, err)
	}

	_, err = r.client.RunInTransaction(ctx, func(tx *ds.Transaction) error {
		if len(taskKeys) > 0 {
			if err := tx.DeleteMulti(taskKeys); err != nil {
				return err
			}
		}
		return tx.Delete(parent)
	})
	return err
}
