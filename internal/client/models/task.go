package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Completed    bool     `json:"completed"`
	Priority     Priority `json:"priority"`
	DueDate      *Time    `json:"due_date,omitempty"`
	ProjectID    *int64   `json:"project_id,omitempty"`
	ParentTaskID *int64   `json:"parent_task_id,omitempty"`
	AIGenerated  bool     `json:"ai_generated"`
	UserID       int64    `json:"user_id"`
	CreatedAt    Time     `json:"created_at"`
	UpdatedAt    *Time    `json:"updated_at,omitempty"`
	CompletedAt  *Time    `json:"completed_at,omitempty"`
	Project      *Project `json:"project,omitempty"`
}

type TaskCreate struct {
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	Priority     Priority `json:"priority,omitempty"`
	DueDate      *Time    `json:"due_date,omitempty"`
	ProjectID    *int64   `json:"project_id,omitempty"`
	ParentTaskID *int64   `json:"parent_task_id,omitempty"`
}

type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *Time     `json:"due_date,omitempty"`
	ProjectID   *int64    `json:"project_id,omitempty"`
}
