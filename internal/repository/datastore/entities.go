package datastore

import (
	"time"

	ds "cloud.google.com/go/datastore"
	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

// taskListRecord is the stored shape of a list. The id lives in the key.
type taskListRecord struct {
	Title       string    `datastore:"title"`
	Description string    `datastore:"description,noindex"`
	Created     time.Time `datastore:"created"`
	Updated     time.Time `datastore:"updated"`
}

// taskRecord is the stored shape of a task. The id and the owning list live
// in the (ancestor) key; a zero DueDate means no due date.
type taskRecord struct {
	Title       string    `datastore:"title"`
	Description string    `datastore:"description,noindex"`
	DueDate     time.Time `datastore:"due_date,noindex"`
	Priority    string    `datastore:"priority"`
	Status      string    `datastore:"status"`
	Created     time.Time `datastore:"created"`
	Updated     time.Time `datastore:"updated"`
}

func listKey(id uuid.UUID) *ds.Key {
	return ds.NameKey(kindTaskList, id.String(), nil)
}

func taskKey(listID, taskID uuid.UUID) *ds.Key {
	return ds.NameKey(kindTask, taskID.String(), listKey(listID))
}

func toListRecord(list *domain.TaskList) *taskListRecord {
	return &taskListRecord{
		Title:       list.Title,
		Description: list.Description,
		Created:     list.Created,
		Updated:     list.Updated,
	}
}

func fromListRecord(id uuid.UUID, rec *taskListRecord) *domain.TaskList {
	return &domain.TaskList{
		ID:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Created:     rec.Created,
		Updated:     rec.Updated,
	}
}

func toTaskRecord(task *domain.Task) *taskRecord {
	rec := &taskRecord{
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Created:     task.Created,
		Updated:     task.Updated,
	}
	if task.DueDate != nil {
		rec.DueDate = *task.DueDate
	}
	return rec
}

func fromTaskRecord(listID, taskID uuid.UUID, rec *taskRecord) *domain.Task {
	task := &domain.Task{
		ID:          taskID,
		TaskListID:  listID,
		Title:       rec.Title,
		Description: rec.Description,
		Priority:    domain.TaskPriority(rec.Priority),
		Status:      domain.TaskStatus(rec.Status),
		Created:     rec.Created,
		Updated:     rec.Updated,
	}
	if !rec.DueDate.IsZero() {
		due := rec.DueDate
		task.DueDate = &due
	}
	return task
}
