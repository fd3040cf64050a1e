// Package api holds one thin module per backend resource. Every function
// issues exactly one request through the HTTP client and returns the decoded
// body or the client's *APIError. Nothing is cached or retried here.
package api

import (
	"context"
	"net/url"
	"strconv"
)

// Doer is the part of client.HTTPClient the modules use.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	DoForm(ctx context.Context, method, path string, form url.Values, out any) error
}

// API bundles every resource module over one Doer.
type API struct {
	Auth      *AuthAPI
	Tasks     *TasksAPI
	Projects  *ProjectsAPI
	Templates *TemplatesAPI
	Tags      *TagsAPI
	AI        *AIAPI
}

func New(d Doer) *API {
	return &API{
		Auth:      &AuthAPI{d: d},
		Tasks:     &TasksAPI{d: d},
		Projects:  &ProjectsAPI{d: d},
		Templates: &TemplatesAPI{d: d},
		Tags:      &TagsAPI{d: d},
		AI:        &AIAPI{d: d},
	}
}

func itemPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
