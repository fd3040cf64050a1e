package api

import (
	"context"
	"net/http"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const tasksBase = "/api/tasks"

type TasksAPI struct {
	d Doer
}

func NewTasksAPI(d Doer) *TasksAPI { return &TasksAPI{d: d} }

// List returns the tasks matching p as a plain slice.
func (t *TasksAPI) List(ctx context.Context, p models.TaskListParams) ([]models.Task, error) {
	var out []models.Task
	if err := t.d.Do(ctx, http.MethodGet, tasksBase, p.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPage is List for callers that render pagination. A server that answers
// with a bare array yields a single page.
func (t *TasksAPI) ListPage(ctx context.Context, p models.TaskListParams) (*models.Page[models.Task], error) {
	var out models.Page[models.Task]
	if err := t.d.Do(ctx, http.MethodGet, tasksBase, p.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) Get(ctx context.Context, id int64) (*models.Task, error) {
	var out models.Task
	if err := t.d.Do(ctx, http.MethodGet, itemPath(tasksBase, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) Create(ctx context.Context, in models.TaskCreate) (*models.Task, error) {
	var out models.Task
	if err := t.d.Do(ctx, http.MethodPost, tasksBase, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) Update(ctx context.Context, id int64, in models.TaskUpdate) (*models.Task, error) {
	var out models.Task
	if err := t.d.Do(ctx, http.MethodPut, itemPath(tasksBase, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TasksAPI) Delete(ctx context.Context, id int64) error {
	return t.d.Do(ctx, http.MethodDelete, itemPath(tasksBase, id), nil, nil, nil)
}

// Search runs a free-text query over the fields named in q.SearchIn (all
// fields when empty).
func (t *TasksAPI) Search(ctx context.Context, q models.SearchQuery) ([]models.Task, error) {
	var out []models.Task
	if err := t.d.Do(ctx, http.MethodGet, tasksBase+"/search", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TasksAPI) AdvancedSearch(ctx context.Context, p models.TaskSearchParams) ([]models.Task, error) {
	var out []models.Task
	if err := t.d.Do(ctx, http.MethodPost, tasksBase+"/search/advanced", nil, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}
