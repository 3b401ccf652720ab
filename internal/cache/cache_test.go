package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/service"
)

// stubListService counts how often the decorated service is actually hit.
type stubListService struct {
	detail    domain.TaskListDetail
	getCalls  int
	listCalls int
}

func (s *stubListService) Create(ctx context.Context, title, description string) (*domain.TaskList, error) {
	list := s.detail.TaskList
	list.Title = title
	list.Description = description
	return &list, nil
}

func (s *stubListService) Get(ctx context.Context, id uuid.UUID) (*domain.TaskListDetail, error) {
	s.getCalls++
	d := s.detail
	return &d, nil
}

func (s *stubListService) List(ctx context.Context) ([]domain.TaskListDetail, error) {
	s.listCalls++
	return []domain.TaskListDetail{s.detail}, nil
}

func (s *stubListService) Update(ctx context.Context, id uuid.UUID, patch domain.TaskListPatch) (*domain.TaskList, error) {
	list := s.detail.TaskList
	if patch.Title != nil {
		list.Title = *patch.Title
	}
	if patch.Description != nil {
		list.Description = *patch.Description
	}
	return &list, nil
}

func (s *stubListService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubTaskService struct {
	task     domain.Task
	getCalls int
}

func (s *stubTaskService) Create(ctx context.Context, listID uuid.UUID, in service.CreateTaskInput) (*domain.Task, error) {
	t := s.task
	t.Title = in.Title
	return &t, nil
}

func (s *stubTaskService) Get(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	s.getCalls++
	t := s.task
	return &t, nil
}

func (s *stubTaskService) List(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	return []domain.Task{s.task}, nil
}

func (s *stubTaskService) Update(ctx context.Context, listID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	t := s.task
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	return &t, nil
}

func (s *stubTaskService) Delete(ctx context.Context, listID, taskID uuid.UUID) error {
	return nil
}

func newStubs() (*stubListService, *stubTaskService) {
	listID := uuid.New()
	taskID := uuid.New()
	listSvc := &stubListService{
		detail: domain.TaskListDetail{
			TaskList: domain.TaskList{ID: listID, Title: "Work"},
			Count:    1,
			Progress: 0,
			Tasks:    []domain.Task{{ID: taskID, TaskListID: listID, Title: "t", Status: domain.StatusOpen}},
		},
	}
	taskSvc := &stubTaskService{
		task: domain.Task{ID: taskID, TaskListID: listID, Title: "t", Status: domain.StatusOpen},
	}
	return listSvc, taskSvc
}

func TestListReadThrough(t *testing.T) {
	ctx := context.Background()
	inner, _ := newStubs()
	cached := NewTaskListService(inner, NewStore())

	first, err := cached.Get(ctx, inner.detail.ID)
	require.NoError(t, err)
	second, err := cached.Get(ctx, inner.detail.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.getCalls)
}

func TestListCollectionInvalidatedByCreate(t *testing.T) {
	ctx := context.Background()
	inner, _ := newStubs()
	cached := NewTaskListService(inner, NewStore())

	_, err := cached.List(ctx)
	require.NoError(t, err)
	_, err = cached.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.listCalls)

	_, err = cached.Create(ctx, "New list", "")
	require.NoError(t, err)

	_, err = cached.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}

func TestListUpdateWritesThrough(t *testing.T) {
	ctx := context.Background()
	inner, _ := newStubs()
	cached := NewTaskListService(inner, NewStore())

	_, err := cached.Get(ctx, inner.detail.ID)
	require.NoError(t, err)

	title := "Renamed"
	_, err = cached.Update(ctx, inner.detail.ID, domain.TaskListPatch{Title: &title})
	require.NoError(t, err)

	got, err := cached.Get(ctx, inner.detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	// the refreshed entity was served from cache, not the inner service
	assert.Equal(t, 1, inner.getCalls)
}

func TestTaskMutationInvalidatesListViews(t *testing.T) {
	ctx := context.Background()
	innerList, innerTask := newStubs()
	store := NewStore()
	cachedLists := NewTaskListService(innerList, store)
	cachedTasks := NewTaskService(innerTask, store)

	listID := innerList.detail.ID
	taskID := innerTask.task.ID

	_, err := cachedLists.Get(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, 1, innerList.getCalls)

	// closing a task changes the list's derived progress
	closed := domain.StatusClosed
	_, err = cachedTasks.Update(ctx, listID, taskID, domain.TaskPatch{Status: &closed})
	require.NoError(t, err)

	_, err = cachedLists.Get(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, 2, innerList.getCalls)
}

func TestTaskUpdateWritesThrough(t *testing.T) {
	ctx := context.Background()
	_, inner := newStubs()
	cached := NewTaskService(inner, NewStore())

	listID := inner.task.TaskListID
	taskID := inner.task.ID

	closed := domain.StatusClosed
	_, err := cached.Update(ctx, listID, taskID, domain.TaskPatch{Status: &closed})
	require.NoError(t, err)

	got, err := cached.Get(ctx, listID, taskID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, got.Status)
	assert.Zero(t, inner.getCalls)
}

func TestCachedSlicesAreIsolatedFromCallers(t *testing.T) {
	ctx := context.Background()
	innerList, innerTask := newStubs()
	store := NewStore()
	cachedLists := NewTaskListService(innerList, store)
	cachedTasks := NewTaskService(innerTask, store)
	listID := innerList.detail.ID

	lists, err := cachedLists.List(ctx)
	require.NoError(t, err)
	lists[0].Title = "scribbled"

	again, err := cachedLists.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Work", again[0].Title)
	assert.Equal(t, 1, innerList.listCalls)

	tasks, err := cachedTasks.List(ctx, listID)
	require.NoError(t, err)
	tasks[0].Title = "scribbled"

	tasksAgain, err := cachedTasks.List(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, "t", tasksAgain[0].Title)
}

func TestListDeleteDropsTaskEntries(t *testing.T) {
	ctx := context.Background()
	innerList, innerTask := newStubs()
	store := NewStore()
	cachedLists := NewTaskListService(innerList, store)
	cachedTasks := NewTaskService(innerTask, store)

	listID := innerList.detail.ID
	taskID := innerTask.task.ID

	_, err := cachedTasks.Get(ctx, listID, taskID)
	require.NoError(t, err)
	assert.Equal(t, 1, innerTask.getCalls)

	require.NoError(t, cachedLists.Delete(ctx, listID))

	_, err = cachedTasks.Get(ctx, listID, taskID)
	require.NoError(t, err)
	assert.Equal(t, 2, innerTask.getCalls)
}
