package models

// Template is a reusable task blueprint. Using a template creates a task and
// bumps UsageCount on the server.
type Template struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	TaskDescription  string   `json:"task_description"`
	TaskPriority     Priority `json:"task_priority"`
	TaskProjectID    *int64   `json:"task_project_id,omitempty"`
	TaskTags         []string `json:"task_tags"`
	TaskDurationDays *int     `json:"task_duration_days,omitempty"`
	IsShared         bool     `json:"is_shared"`
	Category         string   `json:"category,omitempty"`
	UsageCount       int      `json:"usage_count"`
	UserID           int64    `json:"user_id"`
	CreatedAt        Time     `json:"created_at"`
	UpdatedAt        *Time    `json:"updated_at,omitempty"`
}

type TemplateCreate struct {
	Name             string   `json:"name"`
	Description      *string  `json:"description,omitempty"`
	TaskDescription  string   `json:"task_description"`
	TaskPriority     Priority `json:"task_priority,omitempty"`
	TaskProjectID    *int64   `json:"task_project_id,omitempty"`
	TaskTags         []string `json:"task_tags,omitempty"`
	TaskDurationDays *int     `json:"task_duration_days,omitempty"`
	IsShared         bool     `json:"is_shared"`
	Category         *string  `json:"category,omitempty"`
}

type TemplateUpdate struct {
	Name             *string   `json:"name,omitempty"`
	Description      *string   `json:"description,omitempty"`
	TaskDescription  *string   `json:"task_description,omitempty"`
	TaskPriority     *Priority `json:"task_priority,omitempty"`
	TaskProjectID    *int64    `json:"task_project_id,omitempty"`
	TaskTags         []string  `json:"task_tags,omitempty"`
	TaskDurationDays *int      `json:"task_duration_days,omitempty"`
	IsShared         *bool     `json:"is_shared,omitempty"`
	Category         *string   `json:"category,omitempty"`
}
