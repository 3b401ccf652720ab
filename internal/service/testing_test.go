package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

// memStore is an in-memory stand-in for the persistent store, shared by the
// two repository fakes. taskWrites counts task write-path calls so tests can
// assert the write path was never touched.
type memStore struct {
	lists      map[uuid.UUID]domain.TaskList
	listOrder  []uuid.UUID
	tasks      map[uuid.UUID]domain.Task
	taskOrder  []uuid.UUID
	taskWrites int
}

func newMemStore() *memStore {
	return &memStore{
		lists: make(map[uuid.UUID]domain.TaskList),
		tasks: make(map[uuid.UUID]domain.Task),
	}
}

type memListRepo struct{ s *memStore }

func (r *memListRepo) Create(_ context.Context, list *domain.TaskList) error {
	r.s.lists[list.ID] = *list
	r.s.listOrder = append(r.s.listOrder, list.ID)
	return nil
}

func (r *memListRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TaskList, error) {
	list, ok := r.s.lists[id]
	if !ok {
		return nil, domain.ErrTaskListNotFound
	}
	return &list, nil
}

func (r *memListRepo) List(_ context.Context) ([]domain.TaskList, error) {
	lists := make([]domain.TaskList, 0, len(r.s.listOrder))
	for _, id := range r.s.listOrder {
		lists = append(lists, r.s.lists[id])
	}
	return lists, nil
}

func (r *memListRepo) Update(_ context.Context, list *domain.TaskList) error {
	if _, ok := r.s.lists[list.ID]; !ok {
		return domain.ErrTaskListNotFound
	}
	r.s.lists[list.ID] = *list
	return nil
}

func (r *memListRepo) Delete(_ context.Context, id uuid.UUID) error {
	for taskID, task := range r.s.tasks {
		if task.TaskListID == id {
			delete(r.s.tasks, taskID)
		}
	}
	delete(r.s.lists, id)
	for i, lid := range r.s.listOrder {
		if lid == id {
			r.s.listOrder = append(r.s.listOrder[:i], r.s.listOrder[i+1:]...)
			break
		}
	}
	return nil
}

type memTaskRepo struct{ s *memStore }

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.s.taskWrites++
	r.s.tasks[task.ID] = *task
	r.s.taskOrder = append(r.s.taskOrder, task.ID)
	return nil
}

func (r *memTaskRepo) GetByListAndID(_ context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	task, ok := r.s.tasks[taskID]
	if !ok || task.TaskListID != listID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memTaskRepo) ListByList(_ context.Context, listID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	for _, id := range r.s.taskOrder {
		if task, ok := r.s.tasks[id]; ok && task.TaskListID == listID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.s.taskWrites++
	existing, ok := r.s.tasks[task.ID]
	if !ok || existing.TaskListID != task.TaskListID {
		return domain.ErrTaskNotFound
	}
	r.s.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) DeleteByListAndID(_ context.Context, listID, taskID uuid.UUID) error {
	r.s.taskWrites++
	if task, ok := r.s.tasks[taskID]; ok && task.TaskListID == listID {
		delete(r.s.tasks, taskID)
	}
	return nil
}

func (r *memTaskRepo) DeleteAllByList(_ context.Context, listID uuid.UUID) error {
	r.s.taskWrites++
	for id, task := range r.s.tasks {
		if task.TaskListID == listID {
			delete(r.s.tasks, id)
		}
	}
	return nil
}

// fixture builds both services over one shared in-memory store.
type fixture struct {
	store    *memStore
	listSvc  TaskListService
	taskSvc  TaskService
	listRepo domain.TaskListRepository
	taskRepo domain.TaskRepository
}

func newFixture() *fixture {
	store := newMemStore()
	listRepo := &memListRepo{s: store}
	taskRepo := &memTaskRepo{s: store}
	return &fixture{
		store:    store,
		listRepo: listRepo,
		taskRepo: taskRepo,
		listSvc:  NewTaskListService(listRepo, taskRepo, domain.UUIDGenerator{}),
		taskSvc:  NewTaskService(listRepo, taskRepo, domain.UUIDGenerator{}, nil),
	}
}
