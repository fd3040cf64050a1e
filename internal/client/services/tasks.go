package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

// TasksAPI is the slice of api.TasksAPI the task and search services need.
type TasksAPI interface {
	List(ctx context.Context, p models.TaskListParams) ([]models.Task, error)
	ListPage(ctx context.Context, p models.TaskListParams) (*models.Page[models.Task], error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, in models.TaskCreate) (*models.Task, error)
	Update(ctx context.Context, id int64, in models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q models.SearchQuery) ([]models.Task, error)
	AdvancedSearch(ctx context.Context, p models.TaskSearchParams) ([]models.Task, error)
}

type TaskService interface {
	List(ctx context.Context, p models.TaskListParams) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Add(ctx context.Context, in models.TaskCreate) (*models.Task, error)
	Update(ctx context.Context, id int64, in models.TaskUpdate) (*models.Task, error)
	Toggle(ctx context.Context, id int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, p models.TaskSearchParams) ([]models.Task, error)
}

type taskService struct {
	api TasksAPI
}

func NewTaskService(api TasksAPI) TaskService {
	return &taskService{api: api}
}

func (s *taskService) List(ctx context.Context, p models.TaskListParams) ([]models.Task, error) {
	return s.api.List(ctx, p)
}

func (s *taskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	return s.api.Get(ctx, id)
}

// Add validates and creates a task. Priority defaults to medium.
func (s *taskService) Add(ctx context.Context, in models.TaskCreate) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	return s.api.Create(ctx, in)
}

func (s *taskService) Update(ctx context.Context, id int64, in models.TaskUpdate) (*models.Task, error) {
	if in.Priority != nil && !in.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, ErrEmptyTitle
	}
	return s.api.Update(ctx, id, in)
}

// Toggle flips the completed flag. It reads the task first, so a concurrent
// edit between the two calls can be overwritten.
func (s *taskService) Toggle(ctx context.Context, id int64) (*models.Task, error) {
	t, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load task %d: %w", id, err)
	}
	done := !t.Completed
	return s.api.Update(ctx, id, models.TaskUpdate{Completed: &done})
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, id)
}

func (s *taskService) Filter(ctx context.Context, p models.TaskSearchParams) ([]models.Task, error) {
	if p.Priority != nil && !p.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	return s.api.AdvancedSearch(ctx, p)
}
