package api

import (
	"context"
	"net/http"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const tagsBase = "/api/tags"

type TagsAPI struct {
	d Doer
}

func (t *TagsAPI) List(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	if err := t.d.Do(ctx, http.MethodGet, tagsBase, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TagsAPI) Create(ctx context.Context, in models.TagCreate) (*models.Tag, error) {
	var out models.Tag
	if err := t.d.Do(ctx, http.MethodPost, tagsBase, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TagsAPI) Delete(ctx context.Context, id int64) error {
	return t.d.Do(ctx, http.MethodDelete, itemPath(tagsBase, id), nil, nil, nil)
}
