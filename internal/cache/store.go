// Package cache is the read-through/write-through layer in front of the
// task list and task services. Entries carry no TTL; staleness is bounded
// purely by the invalidation discipline at each mutation entry point, so
// every mutation must flow through the decorated services.
package cache

import (
	"sync"

	"github.com/google/uuid"
	"github.com/taskforge/apiserver/internal/domain"
)

type taskCacheKey struct {
	listID uuid.UUID
	taskID uuid.UUID
}

// Store holds the cached read results for both entity kinds. Task progress
// is embedded in the list views, so task mutations invalidate list entries
// too; a single store keeps that coupling in one place.
type Store struct {
	mu sync.RWMutex

	listDetails map[uuid.UUID]domain.TaskListDetail
	allLists    []domain.TaskListDetail
	allValid    bool

	tasks       map[taskCacheKey]domain.Task
	tasksByList map[uuid.UUID][]domain.Task
}

func NewStore() *Store {
	return &Store{
		listDetails: make(map[uuid.UUID]domain.TaskListDetail),
		tasks:       make(map[taskCacheKey]domain.Task),
		tasksByList: make(map[uuid.UUID][]domain.Task),
	}
}

func (s *Store) getListDetail(id uuid.UUID) (domain.TaskListDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.listDetails[id]
	return d, ok
}

func (s *Store) putListDetail(d domain.TaskListDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listDetails[d.ID] = d
}

// getAllLists returns a copy so callers never alias the cached backing
// array.
func (s *Store) getAllLists() ([]domain.TaskListDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.allValid {
		return nil, false
	}
	out := make([]domain.TaskListDetail, len(s.allLists))
	copy(out, s.allLists)
	return out, true
}

// putAllLists stores a copy; the populate path hands the original slice
// straight back to its caller.
func (s *Store) putAllLists(lists []domain.TaskListDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allLists = make([]domain.TaskListDetail, len(lists))
	copy(s.allLists, lists)
	s.allValid = true
}

// replaceListEntity refreshes the entity fields of a cached detail after a
// list update. The task set is unchanged by a list update, so the cached
// tasks and progress stay valid.
func (s *Store) replaceListEntity(list domain.TaskList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.listDetails[list.ID]; ok {
		d.TaskList = list
		s.listDetails[list.ID] = d
	}
	s.allLists = nil
	s.allValid = false
}

func (s *Store) invalidateList(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listDetails, id)
	delete(s.tasksByList, id)
	s.allLists = nil
	s.allValid = false
}

func (s *Store) invalidateAllLists() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allLists = nil
	s.allValid = false
}

// dropListTasks removes every single-task entry belonging to a list,
// used when the list itself is cascade-deleted.
func (s *Store) dropListTasks(listID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.tasks {
		if key.listID == listID {
			delete(s.tasks, key)
		}
	}
	delete(s.tasksByList, listID)
}

func (s *Store) getTask(listID, taskID uuid.UUID) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[taskCacheKey{listID, taskID}]
	return t, ok
}

func (s *Store) putTask(t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[taskCacheKey{t.TaskListID, t.ID}] = t
}

// getTasksByList returns a copy, same as getAllLists.
func (s *Store) getTasksByList(listID uuid.UUID) ([]domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks, ok := s.tasksByList[listID]
	if !ok {
		return nil, false
	}
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out, true
}

func (s *Store) putTasksByList(listID uuid.UUID, tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.Task, len(tasks))
	copy(stored, tasks)
	s.tasksByList[listID] = stored
}

// taskMutated invalidates everything whose value depends on the task: the
// per-list task collection and the list views carrying the derived
// progress. replacement, when non-nil, write-throughs the fresh entity.
func (s *Store) taskMutated(listID, taskID uuid.UUID, replacement *domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if replacement != nil {
		s.tasks[taskCacheKey{listID, taskID}] = *replacement
	} else {
		delete(s.tasks, taskCacheKey{listID, taskID})
	}
	delete(s.tasksByList, listID)
	delete(s.listDetails, listID)
	s.allLists = nil
	s.allValid = false
}
