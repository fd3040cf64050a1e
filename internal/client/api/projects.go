package api

import (
	"context"
	"net/http"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const projectsBase = "/api/projects"

type ProjectsAPI struct {
	d Doer
}

func NewProjectsAPI(d Doer) *ProjectsAPI { return &ProjectsAPI{d: d} }

func (p *ProjectsAPI) List(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := p.d.Do(ctx, http.MethodGet, projectsBase, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProjectsAPI) Get(ctx context.Context, id int64) (*models.Project, error) {
	var out models.Project
	if err := p.d.Do(ctx, http.MethodGet, itemPath(projectsBase, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Create(ctx context.Context, in models.ProjectCreate) (*models.Project, error) {
	var out models.Project
	if err := p.d.Do(ctx, http.MethodPost, projectsBase, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Update(ctx context.Context, id int64, in models.ProjectUpdate) (*models.Project, error) {
	var out models.Project
	if err := p.d.Do(ctx, http.MethodPut, itemPath(projectsBase, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProjectsAPI) Delete(ctx context.Context, id int64) error {
	return p.d.Do(ctx, http.MethodDelete, itemPath(projectsBase, id), nil, nil, nil)
}
