// Package search mirrors task writes into an Elasticsearch index and serves
// full-text queries over task titles and descriptions. The relational store
// stays the system of record; this index is a best-effort secondary.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/pkg/dataflow"
)

const taskIndex = "tasks"

const taskMapping = `{
	"mappings": {
		"properties": {
			"task_list_id": {"type": "keyword"},
			"title":        {"type": "text"},
			"description":  {"type": "text"},
			"priority":     {"type": "keyword"},
			"status":       {"type": "keyword"},
			"due_date":     {"type": "date"},
			"created":      {"type": "date"},
			"updated":      {"type": "date"}
		}
	}
}`

type taskDocument struct {
	TaskListID  string     `json:"task_list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Created     time.Time  `json:"created"`
	Updated     time.Time  `json:"updated"`
}

type Indexer struct {
	client *elastic.Client
}

// NewIndexer connects to Elasticsearch at url and ensures the task index
// exists.
func NewIndexer(ctx context.Context, url string) (*Indexer, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheckTimeoutStartup(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to elasticsearch: %w", err)
	}

	idx := &Indexer{client: client}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (i *Indexer) ensureIndex(ctx context.Context) error {
	exists, err := i.client.IndexExists(taskIndex).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check task index: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := i.client.CreateIndex(taskIndex).BodyString(taskMapping).Do(ctx); err != nil {
		return fmt.Errorf("failed to create task index: %w", err)
	}
	return nil
}

// IndexTask upserts a task document keyed by the task id.
func (i *Indexer) IndexTask(ctx context.Context, task domain.Task) error {
	_, err := i.client.Index().
		Index(taskIndex).
		Id(task.ID.String()).
		BodyJson(toDocument(task)).
		Do(ctx)
	return err
}

// DeleteTask removes a task document. A missing document is fine.
func (i *Indexer) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	_, err := i.client.Delete().
		Index(taskIndex).
		Id(taskID.String()).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

// SearchResult is one task hit.
type SearchResult struct {
	TaskID      uuid.UUID `json:"task_id"`
	TaskListID  uuid.UUID `json:"task_list_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Score       float64   `json:"score"`
}

// Search runs a full-text query over task titles and descriptions.
func (i *Indexer) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 25
	}
	q := elastic.NewMultiMatchQuery(query, "title", "description").Fuzziness("AUTO")
	res, err := i.client.Search().
		Index(taskIndex).
		Query(q).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc taskDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		taskID, err := uuid.Parse(hit.Id)
		if err != nil {
			continue
		}
		listID, err := uuid.Parse(doc.TaskListID)
		if err != nil {
			continue
		}
		score := 0.0
		if hit.Score != nil {
			score = *hit.Score
		}
		results = append(results, SearchResult{
			TaskID:      taskID,
			TaskListID:  listID,
			Title:       doc.Title,
			Description: doc.Description,
			Status:      doc.Status,
			Score:       score,
		})
	}
	return results, nil
}

// Reindex rebuilds the index from the store: all tasks of all lists are
// pushed through a concurrent indexing stage with retry. Tasks that still
// fail after the retry budget are counted and reported, not fatal.
func (i *Indexer) Reindex(ctx context.Context, tasks domain.TaskRepository, lists []domain.TaskList) (int, error) {
	var all []interface{}
	for _, list := range lists {
		listTasks, err := tasks.ListByList(ctx, list.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to load tasks of list %s: %w", list.ID, err)
		}
		for _, t := range listTasks {
			all = append(all, t)
		}
	}

	var failed int32
	src := dataflow.FromSlice(ctx, all)
	indexed := dataflow.Map(ctx, src, func(msg interface{}) (interface{}, error) {
		task := msg.(domain.Task)
		if err := i.IndexTask(ctx, task); err != nil {
			return nil, err
		}
		return task.ID, nil
	},
		dataflow.WithWorkers(4),
		dataflow.WithRetry(3, dataflow.ExponentialBackoff(200*time.Millisecond)),
		dataflow.WithErrorHandler(func(error) bool {
			atomic.AddInt32(&failed, 1)
			return true
		}),
	)

	count := 0
	if err := dataflow.ForEach(ctx, indexed, func(interface{}) error {
		count++
		return nil
	}); err != nil {
		return count, err
	}
	if n := atomic.LoadInt32(&failed); n > 0 {
		return count, fmt.Errorf("%d tasks failed to index", n)
	}
	return count, nil
}

func toDocument(task domain.Task) taskDocument {
	return taskDocument{
		TaskListID:  task.TaskListID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		Created:     task.Created,
		Updated:     task.Updated,
	}
}
