package models

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortConfig maps onto the sort_by/order query parameters.
type SortConfig struct {
	Field string
	Order SortOrder
}

func (s SortConfig) apply(v url.Values) {
	if s.Field == "" {
		return
	}
	v.Set("sort_by", s.Field)
	if s.Order != "" {
		v.Set("order", string(s.Order))
	}
}

// TaskListParams are the filters, pagination and sort options of the task list
// endpoint. Nil or zero fields are omitted from the query string.
type TaskListParams struct {
	Completed *bool
	ProjectID *int64
	Page      int
	PerPage   int
	Skip      int
	Limit     int
	Sort      SortConfig
}

// Values encodes p as query parameters.
func (p TaskListParams) Values() url.Values {
	v := url.Values{}
	if p.Completed != nil {
		v.Set("completed", strconv.FormatBool(*p.Completed))
	}
	if p.ProjectID != nil {
		v.Set("project_id", strconv.FormatInt(*p.ProjectID, 10))
	}
	setPositive(v, "page", p.Page)
	setPositive(v, "per_page", p.PerPage)
	setPositive(v, "skip", p.Skip)
	setPositive(v, "limit", p.Limit)
	p.Sort.apply(v)
	return v
}

// SearchQuery is the free-text search of /api/tasks/search.
type SearchQuery struct {
	Q        string
	SearchIn []string
}

func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	v.Set("q", q.Q)
	if len(q.SearchIn) > 0 {
		v.Set("search_in", strings.Join(q.SearchIn, ","))
	}
	return v
}

// TaskSearchParams is the structured body of /api/tasks/search/advanced.
type TaskSearchParams struct {
	Q             string    `json:"q,omitempty"`
	Completed     *bool     `json:"completed,omitempty"`
	Priority      *Priority `json:"priority,omitempty"`
	ProjectID     *int64    `json:"project_id,omitempty"`
	HasDueDate    *bool     `json:"has_due_date,omitempty"`
	Overdue       *bool     `json:"overdue,omitempty"`
	CreatedAfter  *Time     `json:"created_after,omitempty"`
	CreatedBefore *Time     `json:"created_before,omitempty"`
}

// TemplateFilter narrows the template list.
type TemplateFilter struct {
	Category string
	IsShared *bool
}

func (f TemplateFilter) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.IsShared != nil {
		v.Set("is_shared", strconv.FormatBool(*f.IsShared))
	}
	return v
}

// Page is a paginated list response. A bare JSON array decodes as a single
// page holding every item.
type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, Total: len(items), Page: 1, PerPage: len(items), Pages: 1}
		return nil
	}
	type plain Page[T]
	var out plain
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*p = Page[T](out)
	return nil
}

func setPositive(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

// Ptr returns a pointer to v. Handy for optional request fields.
func Ptr[T any](v T) *T { return &v }
