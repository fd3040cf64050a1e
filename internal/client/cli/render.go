package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/imramugh/ai-task-manager/internal/client/client"
	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/common"
)

func userMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.UserMessage()
	case errors.Is(err, common.ErrRedirected):
		return "Please log in to continue"
	default:
		return err.Error()
	}
}

func printTasks(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tDUE\tPROJECT\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, checkbox(t.Completed), t.Priority, dueDate(t), projectName(t), t.Title)
	}
	_ = tw.Flush()
}

func printTask(w io.Writer, t *models.Task) {
	fmt.Fprintf(w, "#%d %s %s\n", t.ID, checkbox(t.Completed), t.Title)
	fmt.Fprintf(w, "  priority: %s\n", t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(w, "  due:      %s\n", dueDate(*t))
	}
	if name := projectName(*t); name != "" {
		fmt.Fprintf(w, "  project:  %s\n", name)
	}
	if t.Description != "" {
		fmt.Fprintf(w, "  %s\n", t.Description)
	}
}

func printProjects(w io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLOR\tNAME\tDESCRIPTION")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Color, p.Name, p.Description)
	}
	_ = tw.Flush()
}

func printTemplates(w io.Writer, templates []models.Template) {
	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tPRIORITY\tUSED\tSHARED\tNAME")
	for _, t := range templates {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%t\t%s\n",
			t.ID, t.Category, t.TaskPriority, t.UsageCount, t.IsShared, t.Name)
	}
	_ = tw.Flush()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func dueDate(t models.Task) string {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return "-"
	}
	return t.DueDate.Format("2006-01-02")
}

func projectName(t models.Task) string {
	if t.Project != nil {
		return t.Project.Name
	}
	if t.ProjectID != nil {
		return fmt.Sprintf("#%d", *t.ProjectID)
	}
	return ""
}
