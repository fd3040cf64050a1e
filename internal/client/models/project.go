package models

// DefaultProjectColor matches the backend default.
const DefaultProjectColor = "#3B82F6"

type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	UserID      int64  `json:"user_id"`
	CreatedAt   Time   `json:"created_at"`
	UpdatedAt   *Time  `json:"updated_at,omitempty"`
}

type ProjectCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}
