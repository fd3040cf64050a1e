package cli

import (
	"context"
	"strings"
	"sync"

	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/client/services"
)

// ListTasks prints one page of tasks.
func (a *App) ListTasks(ctx context.Context, p models.TaskListParams) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		tasks, err := a.tasks.List(ctx, p)
		if err != nil {
			return err
		}
		printTasks(a.out, tasks)
		return nil
	})
}

func (a *App) ShowTask(ctx context.Context, id int64) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		t, err := a.tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		printTask(a.out, t)
		return nil
	})
}

func (a *App) AddTask(ctx context.Context, in models.TaskCreate) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		t, err := a.tasks.Add(ctx, in)
		if err != nil {
			return err
		}
		a.printf("Created task #%d: %s\n", t.ID, t.Title)
		return nil
	})
}

// ToggleTask flips a task between open and done.
func (a *App) ToggleTask(ctx context.Context, id int64) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		t, err := a.tasks.Toggle(ctx, id)
		if err != nil {
			return err
		}
		state := "open"
		if t.Completed {
			state = "done"
		}
		a.printf("Task #%d is %s\n", t.ID, state)
		return nil
	})
}

func (a *App) DeleteTask(ctx context.Context, id int64) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		if err := a.tasks.Delete(ctx, id); err != nil {
			return err
		}
		a.printf("Deleted task #%d\n", id)
		return nil
	})
}

// SearchTasks runs one query. A blank query prints the first page of the
// unfiltered list.
func (a *App) SearchTasks(ctx context.Context, q string, fields []string) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		s := services.NewSearchService(ctx, a.tasksAPI, 0, fields, a.log, nil)
		defer s.Close()

		res := s.Query(ctx, q)
		if res.Err != nil {
			return res.Err
		}
		a.printSearchResult(res)
		return nil
	})
}

// LiveSearch reads search input line by line until EOF or a line holding a
// single ".". Input arriving faster than the debounce delay is coalesced and
// only the latest result is printed.
func (a *App) LiveSearch(ctx context.Context, fields []string) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		var mu sync.Mutex
		s := services.NewSearchService(ctx, a.tasksAPI, a.config.SearchDebounce, fields, a.log,
			func(res services.SearchResult) {
				mu.Lock()
				defer mu.Unlock()
				if res.Err != nil {
					a.reportError(res.Err)
					return
				}
				a.printSearchResult(res)
			})
		defer s.Close()

		a.printf("Type to search, '.' to finish\n")
		for {
			line, err := a.reader.ReadString('\n')
			text := strings.TrimRight(line, "\r\n")
			if text == "." {
				break
			}
			if line != "" {
				s.Type(text)
			}
			if err != nil {
				break
			}
		}
		s.Flush()
		return nil
	})
}

func (a *App) printSearchResult(res services.SearchResult) {
	if res.Filtered {
		a.printf("%d result(s) for %q\n", res.Total, res.Query)
	} else {
		a.printf("All tasks (%d)\n", res.Total)
	}
	printTasks(a.out, res.Tasks)
}

// FilterTasks runs the structured search.
func (a *App) FilterTasks(ctx context.Context, p models.TaskSearchParams) error {
	return a.protect(ctx, navigation.ViewTasks, func(ctx context.Context) error {
		tasks, err := a.tasks.Filter(ctx, p)
		if err != nil {
			return err
		}
		printTasks(a.out, tasks)
		return nil
	})
}
