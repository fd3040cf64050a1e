package models

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ConversationMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatMessage is the request body of both AI endpoints. Context carries
// free-form hints such as {"project_id": 3} or the user's existing tasks.
type ChatMessage struct {
	Content             string                `json:"content"`
	Context             map[string]any        `json:"context,omitempty"`
	ConversationHistory []ConversationMessage `json:"conversation_history,omitempty"`
}

type TaskSuggestion struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       Priority `json:"priority"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

type ChatResponse struct {
	Content     string           `json:"content"`
	Suggestions []TaskSuggestion `json:"suggestions"`
}

// GeneratedTasks is the reply of /api/ai/generate-tasks: the tasks have
// already been created server-side.
type GeneratedTasks struct {
	Message string `json:"message"`
	Tasks   []Task `json:"tasks"`
}
