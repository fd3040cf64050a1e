package services

import (
	"context"
	"strings"
	"sync"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

// DefaultHistoryLimit caps how many past messages ride along with a chat turn.
const DefaultHistoryLimit = 20

type AIAPI interface {
	Chat(ctx context.Context, msg models.ChatMessage) (*models.ChatResponse, error)
	GenerateTasks(ctx context.Context, msg models.ChatMessage) (*models.GeneratedTasks, error)
}

// Assistant is one conversation with the AI endpoint. It remembers the turns
// so each request carries the recent history. Safe for concurrent use, though
// turns are serialised.
type Assistant struct {
	api   AIAPI
	limit int

	mu      sync.Mutex
	history []models.ConversationMessage
}

func NewAssistant(api AIAPI, historyLimit int) *Assistant {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Assistant{api: api, limit: historyLimit}
}

// Chat sends content with the conversation so far. The turn is recorded only
// when the server answers.
func (a *Assistant) Chat(ctx context.Context, content string) (*models.ChatResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	resp, err := a.api.Chat(ctx, models.ChatMessage{
		Content:             content,
		ConversationHistory: a.snapshot(),
	})
	if err != nil {
		return nil, err
	}

	a.record(
		models.ConversationMessage{Role: models.RoleUser, Content: content},
		models.ConversationMessage{Role: models.RoleAssistant, Content: resp.Content},
	)
	return resp, nil
}

// GenerateTasks asks the server to create tasks from prompt inside projectID.
func (a *Assistant) GenerateTasks(ctx context.Context, prompt string, projectID int64) (*models.GeneratedTasks, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyMessage
	}
	if projectID <= 0 {
		return nil, ErrProjectRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	out, err := a.api.GenerateTasks(ctx, models.ChatMessage{
		Content:             prompt,
		Context:             map[string]any{"project_id": projectID},
		ConversationHistory: a.snapshot(),
	})
	if err != nil {
		return nil, err
	}

	a.record(
		models.ConversationMessage{Role: models.RoleUser, Content: prompt},
		models.ConversationMessage{Role: models.RoleAssistant, Content: out.Message},
	)
	return out, nil
}

// History returns a copy of the recorded turns.
func (a *Assistant) History() []models.ConversationMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}

func (a *Assistant) snapshot() []models.ConversationMessage {
	if len(a.history) == 0 {
		return nil
	}
	out := make([]models.ConversationMessage, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Assistant) record(msgs ...models.ConversationMessage) {
	a.history = append(a.history, msgs...)
	if over := len(a.history) - a.limit; over > 0 {
		a.history = append([]models.ConversationMessage(nil), a.history[over:]...)
	}
}
