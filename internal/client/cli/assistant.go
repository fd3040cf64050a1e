package cli

import (
	"context"

	"github.com/imramugh/ai-task-manager/internal/client/navigation"
)

// Chat sends one message to the assistant and prints the reply and any
// suggested tasks. The conversation is kept for the life of the App.
func (a *App) Chat(ctx context.Context, message string) error {
	return a.protect(ctx, navigation.ViewAssistant, func(ctx context.Context) error {
		resp, err := a.assistant.Chat(ctx, message)
		if err != nil {
			return err
		}
		a.printf("%s\n", resp.Content)
		for i, s := range resp.Suggestions {
			a.printf("  %d. [%s] %s\n", i+1, s.Priority, s.Title)
			if s.EstimatedHours != nil {
				a.printf("     ~%.1fh\n", *s.EstimatedHours)
			}
		}
		return nil
	})
}

// GenerateTasks has the assistant create tasks in projectID.
func (a *App) GenerateTasks(ctx context.Context, prompt string, projectID int64) error {
	return a.protect(ctx, navigation.ViewAssistant, func(ctx context.Context) error {
		out, err := a.assistant.GenerateTasks(ctx, prompt, projectID)
		if err != nil {
			return err
		}
		if out.Message != "" {
			a.printf("%s\n", out.Message)
		}
		printTasks(a.out, out.Tasks)
		return nil
	})
}
