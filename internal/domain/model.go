package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskPriority is the stored priority enum.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// TaskStatus is the stored status enum. Tasks always start OPEN.
type TaskStatus string

const (
	StatusOpen   TaskStatus = "OPEN"
	StatusClosed TaskStatus = "CLOSED"
)

// ParsePriority validates a wire value against the priority enum.
func ParsePriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(s)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", &ValidationError{Code: CodeBadPriority, Message: fmt.Sprintf("unknown priority %q", s)}
}

// ParseStatus validates a wire value against the status enum.
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(s)) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusClosed:
		return StatusClosed, nil
	}
	return "", &ValidationError{Code: CodeBadStatus, Message: fmt.Sprintf("unknown status %q", s)}
}

// TaskList is the parent aggregate grouping tasks.
type TaskList struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Task is a unit of work owned by exactly one TaskList. TaskListID is
// assigned at creation and never reassigned.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	TaskListID  uuid.UUID    `json:"task_list_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Created     time.Time    `json:"created"`
	Updated     time.Time    `json:"updated"`
}

// TaskListDetail is the read view of a list: the entity plus its tasks and
// the completion progress derived from them. Progress is recomputed on every
// read and never stored.
type TaskListDetail struct {
	TaskList
	Count    int     `json:"count"`
	Progress float64 `json:"progress"`
	Tasks    []Task  `json:"tasks"`
}

// TaskListPatch carries a merge-update for a list. Nil fields are left
// untouched on the stored entity.
type TaskListPatch struct {
	Title       *string
	Description *string
}

// TaskPatch carries a merge-update for a task. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *TaskPriority
	Status      *TaskStatus
}

const maxTitleLen = 255

// ValidateTitle enforces the shared title rule: non-blank, at most 255
// characters. The limit counts runes, not bytes.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Code: CodeBlankTitle, Message: "title must not be blank"}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return &ValidationError{Code: CodeTitleTooLong, Message: fmt.Sprintf("title exceeds %d characters", maxTitleLen)}
	}
	return nil
}

// IDGenerator produces opaque identifiers for lists and tasks at creation
// time. Injectable so tests can pin ids.
type IDGenerator interface {
	NewID() uuid.UUID
}

// UUIDGenerator is the production IDGenerator backed by random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() uuid.UUID { return uuid.New() }
