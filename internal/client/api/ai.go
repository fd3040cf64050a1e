package api

import (
	"context"
	"net/http"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const aiBase = "/api/ai"

type AIAPI struct {
	d Doer
}

func NewAIAPI(d Doer) *AIAPI { return &AIAPI{d: d} }

// Chat sends one conversational turn and returns the assistant's reply with
// any task suggestions.
func (a *AIAPI) Chat(ctx context.Context, msg models.ChatMessage) (*models.ChatResponse, error) {
	var out models.ChatResponse
	if err := a.d.Do(ctx, http.MethodPost, aiBase+"/chat", nil, msg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateTasks asks the assistant to turn msg into tasks. The server creates
// them; the reply lists what was created.
func (a *AIAPI) GenerateTasks(ctx context.Context, msg models.ChatMessage) (*models.GeneratedTasks, error) {
	var out models.GeneratedTasks
	if err := a.d.Do(ctx, http.MethodPost, aiBase+"/generate-tasks", nil, msg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
