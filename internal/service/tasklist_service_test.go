package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/apiserver/internal/domain"
)

func TestCreateTaskList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	t.Run("GetAfterCreateMatches", func(t *testing.T) {
		created, err := f.listSvc.Create(ctx, "Work", "things to do")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, created.Created, created.Updated)

		got, err := f.listSvc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Work", got.Title)
		assert.Equal(t, "things to do", got.Description)
		assert.Equal(t, 0, got.Count)
		assert.Equal(t, 0.0, got.Progress)
		assert.Empty(t, got.Tasks)
	})

	t.Run("BlankTitleRejected", func(t *testing.T) {
		_, err := f.listSvc.Create(ctx, "  ", "")
		assert.Error(t, err)
		assert.Equal(t, domain.CodeBlankTitle, domain.ValidationCode(err))
	})
}

func TestGetTaskListNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.listSvc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTaskList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.listSvc.Create(ctx, "Work", "original description")
	require.NoError(t, err)

	t.Run("MergeOnlyPresentFields", func(t *testing.T) {
		newTitle := "Renamed"
		updated, err := f.listSvc.Update(ctx, created.ID, domain.TaskListPatch{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "original description", updated.Description)
		assert.True(t, updated.Updated.After(created.Updated) || updated.Updated.Equal(created.Updated))
	})

	t.Run("BlankTitleRejectsPatch", func(t *testing.T) {
		blank := ""
		_, err := f.listSvc.Update(ctx, created.ID, domain.TaskListPatch{Title: &blank})
		assert.Equal(t, domain.CodeBlankTitle, domain.ValidationCode(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		title := "x"
		_, err := f.listSvc.Update(ctx, uuid.New(), domain.TaskListPatch{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteTaskListCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	list, err := f.listSvc.Create(ctx, "Work", "")
	require.NoError(t, err)
	t1, err := f.taskSvc.Create(ctx, list.ID, CreateTaskInput{Title: "one"})
	require.NoError(t, err)
	t2, err := f.taskSvc.Create(ctx, list.ID, CreateTaskInput{Title: "two"})
	require.NoError(t, err)

	require.NoError(t, f.listSvc.Delete(ctx, list.ID))

	_, err = f.taskSvc.Get(ctx, list.ID, t1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.taskSvc.Get(ctx, list.ID, t2.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tasks, err := f.taskSvc.List(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// tolerant delete: a second delete of the same id succeeds
	assert.NoError(t, f.listSvc.Delete(ctx, list.ID))
}

func TestListTaskListsProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	list, err := f.listSvc.Create(ctx, "Work", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.taskSvc.Create(ctx, list.ID, CreateTaskInput{Title: "open task"})
		require.NoError(t, err)
	}
	closedTask, err := f.taskSvc.Create(ctx, list.ID, CreateTaskInput{Title: "done task"})
	require.NoError(t, err)

	closed := domain.StatusClosed
	_, err = f.taskSvc.Update(ctx, list.ID, closedTask.ID, domain.TaskPatch{Status: &closed})
	require.NoError(t, err)

	details, err := f.listSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 4, details[0].Count)
	assert.Equal(t, 25.0, details[0].Progress)
}
