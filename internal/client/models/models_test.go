package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskListParams_Values(t *testing.T) {
	p := TaskListParams{
		Completed: Ptr(false),
		ProjectID: Ptr(int64(3)),
		Sort:      SortConfig{Field: "due_date", Order: SortAsc},
	}

	v := p.Values()

	assert.Equal(t, "false", v.Get("completed"))
	assert.Equal(t, "3", v.Get("project_id"))
	assert.Equal(t, "due_date", v.Get("sort_by"))
	assert.Equal(t, "asc", v.Get("order"))
	assert.Len(t, v, 4)
}

func TestTaskListParams_Values_Empty(t *testing.T) {
	assert.Empty(t, TaskListParams{}.Values())
}

func TestTaskListParams_Values_Pagination(t *testing.T) {
	v := TaskListParams{Page: 2, PerPage: 20, Sort: SortConfig{Field: "priority"}}.Values()

	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("per_page"))
	assert.Equal(t, "priority", v.Get("sort_by"))
	assert.False(t, v.Has("order"))
}

func TestSearchQuery_Values(t *testing.T) {
	v := SearchQuery{Q: "milk", SearchIn: []string{"title", "description"}}.Values()
	assert.Equal(t, "milk", v.Get("q"))
	assert.Equal(t, "title,description", v.Get("search_in"))
}

func TestTemplateFilter_Values(t *testing.T) {
	v := TemplateFilter{Category: "work", IsShared: Ptr(true)}.Values()
	assert.Equal(t, "work", v.Get("category"))
	assert.Equal(t, "true", v.Get("is_shared"))
	assert.Empty(t, TemplateFilter{}.Values())
}

func TestPage_UnmarshalJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		var p Page[Project]
		err := json.Unmarshal([]byte(`{"items":[{"id":1,"name":"a"}],"total":5,"page":1,"per_page":1,"pages":5}`), &p)
		require.NoError(t, err)
		assert.Equal(t, 5, p.Total)
		assert.Equal(t, 5, p.Pages)
		require.Len(t, p.Items, 1)
		assert.Equal(t, "a", p.Items[0].Name)
	})

	t.Run("bare array", func(t *testing.T) {
		var p Page[Project]
		err := json.Unmarshal([]byte(`[{"id":1},{"id":2}]`), &p)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Total)
		assert.Equal(t, 1, p.Pages)
		assert.Len(t, p.Items, 2)
	})

	t.Run("garbage", func(t *testing.T) {
		var p Page[Project]
		assert.Error(t, json.Unmarshal([]byte(`"x"`), &p))
	})
}

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-05-01T10:20:30Z"`, time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)},
		{`"2024-05-01T10:20:30.123456"`, time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.UTC)},
		{`"2024-05-01T10:20:30"`, time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)},
		{`"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{`null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.True(t, tt.want.Equal(got.Time), "got %v", got.Time)
		})
	}

	var bad Time
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestTask_Decode(t *testing.T) {
	body := `{"id":7,"title":"Buy milk","completed":false,"priority":"high",
		"due_date":"2024-06-01T00:00:00","project_id":3,"ai_generated":true,
		"user_id":1,"created_at":"2024-05-01T10:00:00"}`

	var got Task
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	want := Task{
		ID:          7,
		Title:       "Buy milk",
		Priority:    PriorityHigh,
		DueDate:     &Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		ProjectID:   Ptr(int64(3)),
		AIGenerated: true,
		UserID:      1,
		CreatedAt:   Time{time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("task mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskUpdate_OmitsUnset(t *testing.T) {
	b, err := json.Marshal(TaskUpdate{Completed: Ptr(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":true}`, string(b))
}

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, Priority("critical").Valid())
}
