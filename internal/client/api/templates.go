package api

import (
	"context"
	"net/http"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const templatesBase = "/api/templates"

type TemplatesAPI struct {
	d Doer
}

func NewTemplatesAPI(d Doer) *TemplatesAPI { return &TemplatesAPI{d: d} }

func (t *TemplatesAPI) List(ctx context.Context, f models.TemplateFilter) ([]models.Template, error) {
	var out []models.Template
	if err := t.d.Do(ctx, http.MethodGet, templatesBase, f.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TemplatesAPI) Create(ctx context.Context, in models.TemplateCreate) (*models.Template, error) {
	var out models.Template
	if err := t.d.Do(ctx, http.MethodPost, templatesBase, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TemplatesAPI) Update(ctx context.Context, id int64, in models.TemplateUpdate) (*models.Template, error) {
	var out models.Template
	if err := t.d.Do(ctx, http.MethodPut, itemPath(templatesBase, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TemplatesAPI) Delete(ctx context.Context, id int64) error {
	return t.d.Do(ctx, http.MethodDelete, itemPath(templatesBase, id), nil, nil, nil)
}

// Use instantiates the template as a new task.
func (t *TemplatesAPI) Use(ctx context.Context, id int64) (*models.Task, error) {
	var out models.Task
	if err := t.d.Do(ctx, http.MethodPost, itemPath(templatesBase, id)+"/use", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
