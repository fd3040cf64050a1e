package cli

import (
	"context"

	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
)

func (a *App) ListProjects(ctx context.Context) error {
	return a.protect(ctx, navigation.ViewProjects, func(ctx context.Context) error {
		projects, err := a.projects.List(ctx)
		if err != nil {
			return err
		}
		printProjects(a.out, projects)
		return nil
	})
}

func (a *App) AddProject(ctx context.Context, in models.ProjectCreate) error {
	return a.protect(ctx, navigation.ViewProjects, func(ctx context.Context) error {
		if in.Color == "" {
			in.Color = models.DefaultProjectColor
		}
		p, err := a.projects.Create(ctx, in)
		if err != nil {
			return err
		}
		a.printf("Created project #%d: %s\n", p.ID, p.Name)
		return nil
	})
}

func (a *App) DeleteProject(ctx context.Context, id int64) error {
	return a.protect(ctx, navigation.ViewProjects, func(ctx context.Context) error {
		if err := a.projects.Delete(ctx, id); err != nil {
			return err
		}
		a.printf("Deleted project #%d\n", id)
		return nil
	})
}

func (a *App) ListTemplates(ctx context.Context, f models.TemplateFilter) error {
	return a.protect(ctx, navigation.ViewTemplates, func(ctx context.Context) error {
		templates, err := a.templates.List(ctx, f)
		if err != nil {
			return err
		}
		printTemplates(a.out, templates)
		return nil
	})
}

// UseTemplate creates a task from template id.
func (a *App) UseTemplate(ctx context.Context, id int64) error {
	return a.protect(ctx, navigation.ViewTemplates, func(ctx context.Context) error {
		t, err := a.templates.Use(ctx, id)
		if err != nil {
			return err
		}
		a.printf("Created task #%d from template #%d: %s\n", t.ID, id, t.Title)
		return nil
	})
}
