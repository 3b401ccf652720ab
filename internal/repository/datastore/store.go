// Package datastore provides the Google Cloud Datastore backend for the
// task store, selected with STORE_BACKEND=datastore. Tasks are children of
// their list through ancestor keys, which keeps the composite lookups and
// the cascade delete natural on the Datastore side.
package datastore

import (
	"context"
	"fmt"
	"os"

	ds "cloud.google.com/go/datastore"
	"github.com/taskforge/apiserver/internal/logger"
)

const (
	kindTaskList = "TaskList"
	kindTask     = "Task"
)

// Store wraps the Datastore client and hands out the repository
// implementations bound to it.
type Store struct {
	client *ds.Client
}

// NewStore creates a Datastore-backed task store. The official client picks
// up DATASTORE_EMULATOR_HOST automatically; it is logged for visibility.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if emulatorHost := os.Getenv("DATASTORE_EMULATOR_HOST"); emulatorHost != "" {
		logger.InfoLog(ctx, "initializing Datastore client against emulator at %s", emulatorHost)
	}

	client, err := ds.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) TaskLists() *TaskListRepository {
	return &TaskListRepository{client: s.client}
}

func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{client: s.client}
}

func (s *Store) Close() error {
	return s.client.Close()
}
