package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/imramugh/ai-task-manager/internal/buildinfo"
	"github.com/imramugh/ai-task-manager/internal/client/config"
	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const skipAppAnnotation = "skip-app"

// newAppFn is a test seam for NewApp.
var newAppFn = NewApp

// rootEnv carries what every subcommand needs. The App is built lazily in
// the root's PersistentPreRunE so "version" and "help" work without a
// state directory.
type rootEnv struct {
	args []string
	in   io.Reader
	out  io.Writer
	app  *App
}

// Execute runs the CLI with args (without the program name) on stdin/stdout.
func Execute(ctx context.Context, args []string) error {
	rt := &rootEnv{args: args, in: os.Stdin, out: os.Stdout}
	defer rt.close()

	root := newRootCmd(rt)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (rt *rootEnv) close() {
	if rt.app != nil {
		_ = rt.app.Close()
	}
}

// newRootCmd builds the taskpilot command tree. Global flags are declared
// here so cobra accepts them; their values are read by config.LoadConfig
// from the raw arguments.
func newRootCmd(rt *rootEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskpilot",
		Short:         "Terminal client for the AI task manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) || rt.app != nil {
				return nil
			}
			cfg, err := config.LoadConfig(rt.args)
			if err != nil {
				return err
			}
			app, err := newAppFn(cmd.Context(), cfg, rt.in, rt.out)
			if err != nil {
				return err
			}
			rt.app = app
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt.app.Repl(cmd.Context())
			return nil
		},
	}
	root.SetOut(rt.out)
	root.SetErr(rt.out)

	var (
		configPath, apiURL, stateDir, logLevel string
		timeout                                time.Duration
		production, ephemeral                  bool
	)
	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVarP(&apiURL, "api-url", "a", config.DefaultAPIURL, "backend base URL")
	pf.StringVarP(&stateDir, "state-dir", "s", config.DefaultStateDir, "directory for the cookie jar and local storage")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.DurationVar(&timeout, "timeout", config.DefaultRequestTimeout, "per-request timeout, 0 for none")
	pf.BoolVar(&production, "production", false, "mark session cookies Secure")
	pf.BoolVar(&ephemeral, "ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		newReplCmd(rt),
		newLoginCmd(rt),
		newRegisterCmd(rt),
		newLogoutCmd(rt),
		newWhoAmICmd(rt),
		newResetPasswordCmd(rt),
		newTasksCmd(rt),
		newProjectsCmd(rt),
		newTemplatesCmd(rt),
		newChatCmd(rt),
		newGenerateCmd(rt),
		newVersionCmd(rt),
	)
	return root
}

// report turns err into a user-facing line. The process still fails.
func (rt *rootEnv) report(err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(rt.out, "Error:", userMessage(err))
	return err
}

func newReplCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt.app.Repl(cmd.Context())
			return nil
		},
	}
}

func newLoginCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.report(rt.app.Login(cmd.Context()))
		},
	}
}

func newRegisterCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.report(rt.app.Register(cmd.Context()))
		},
	}
}

func newLogoutCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.report(rt.app.Logout(cmd.Context()))
		},
	}
}

func newWhoAmICmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.report(rt.app.WhoAmI(cmd.Context()))
		},
	}
}

func newResetPasswordCmd(rt *rootEnv) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request or redeem a password reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token != "" {
				return rt.report(rt.app.redeemResetToken(cmd.Context(), token))
			}
			return rt.report(rt.app.ResetPassword(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "redeem this reset token directly")
	return cmd
}

func newTasksCmd(rt *rootEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(rt),
		newTasksShowCmd(rt),
		newTasksAddCmd(rt),
		idCmd("done <id>", "Toggle a task between open and done", func(ctx context.Context, id int64) error {
			return rt.app.ToggleTask(ctx, id)
		}, rt),
		idCmd("rm <id>", "Delete a task", func(ctx context.Context, id int64) error {
			return rt.app.DeleteTask(ctx, id)
		}, rt),
		newTasksSearchCmd(rt),
		newTasksFilterCmd(rt),
	)
	return cmd
}

func newTasksListCmd(rt *rootEnv) *cobra.Command {
	var (
		status, sortBy, order string
		project               int64
		page, perPage         int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok := listParams([]string{status})
			if !ok {
				return fmt.Errorf("unknown status %q, want open, done or all", status)
			}
			if project > 0 {
				p.ProjectID = &project
			}
			p.Page, p.PerPage = page, perPage
			p.Sort = models.SortConfig{Field: sortBy, Order: models.SortOrder(order)}
			return rt.report(rt.app.ListTasks(cmd.Context(), p))
		},
	}
	f := cmd.Flags()
	f.StringVar(&status, "status", "all", "open, done or all")
	f.Int64Var(&project, "project", 0, "only tasks of this project")
	f.IntVar(&page, "page", 0, "page number")
	f.IntVar(&perPage, "per-page", 0, "page size")
	f.StringVar(&sortBy, "sort", "", "sort field, e.g. due_date or priority")
	f.StringVar(&order, "order", "", "asc or desc")
	return cmd
}

func newTasksShowCmd(rt *rootEnv) *cobra.Command {
	return idCmd("show <id>", "Show one task", func(ctx context.Context, id int64) error {
		return rt.app.ShowTask(ctx, id)
	}, rt)
}

func newTasksAddCmd(rt *rootEnv) *cobra.Command {
	var (
		description, priority, due string
		project                    int64
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.TaskCreate{Title: joinArgs(args), Priority: models.Priority(priority)}
			if description != "" {
				in.Description = &description
			}
			if project > 0 {
				in.ProjectID = &project
			}
			if due != "" {
				d, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("due date: %w", err)
				}
				in.DueDate = &models.Time{Time: d}
			}
			return rt.report(rt.app.AddTask(cmd.Context(), in))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&description, "description", "d", "", "task description")
	f.StringVarP(&priority, "priority", "p", "", "low, medium, high or urgent")
	f.StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	f.Int64Var(&project, "project", 0, "project id")
	return cmd
}

func newTasksSearchCmd(rt *rootEnv) *cobra.Command {
	var (
		fields []string
		live   bool
	)
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search tasks; without text lists the first page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if live {
				return rt.report(rt.app.LiveSearch(cmd.Context(), fields))
			}
			return rt.report(rt.app.SearchTasks(cmd.Context(), joinArgs(args), fields))
		},
	}
	cmd.Flags().StringSliceVar(&fields, "in", nil, "fields to search, e.g. title,description")
	cmd.Flags().BoolVar(&live, "live", false, "read queries from stdin as you type")
	return cmd
}

func newTasksFilterCmd(rt *rootEnv) *cobra.Command {
	var (
		q, priority              string
		project                  int64
		open, done, overdue, due bool
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Structured task search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := models.TaskSearchParams{Q: q}
			f := cmd.Flags()
			switch {
			case open:
				p.Completed = models.Ptr(false)
			case done:
				p.Completed = models.Ptr(true)
			}
			if priority != "" {
				p.Priority = models.Ptr(models.Priority(priority))
			}
			if project > 0 {
				p.ProjectID = &project
			}
			if f.Changed("overdue") {
				p.Overdue = &overdue
			}
			if f.Changed("has-due") {
				p.HasDueDate = &due
			}
			return rt.report(rt.app.FilterTasks(cmd.Context(), p))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&q, "query", "q", "", "free text")
	f.StringVarP(&priority, "priority", "p", "", "low, medium, high or urgent")
	f.Int64Var(&project, "project", 0, "project id")
	f.BoolVar(&open, "open", false, "only open tasks")
	f.BoolVar(&done, "done", false, "only completed tasks")
	f.BoolVar(&overdue, "overdue", false, "only overdue tasks")
	f.BoolVar(&due, "has-due", false, "only tasks with a due date")
	cmd.MarkFlagsMutuallyExclusive("open", "done")
	return cmd
}

func newProjectsCmd(rt *rootEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "List and manage projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.report(rt.app.ListProjects(cmd.Context()))
		},
	}

	var description, color string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.ProjectCreate{Name: joinArgs(args), Color: color}
			if description != "" {
				in.Description = &description
			}
			return rt.report(rt.app.AddProject(cmd.Context(), in))
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "project description")
	add.Flags().StringVar(&color, "color", models.DefaultProjectColor, "hex colour")

	cmd.AddCommand(add, idCmd("rm <id>", "Delete a project", func(ctx context.Context, id int64) error {
		return rt.app.DeleteProject(ctx, id)
	}, rt))
	return cmd
}

func newTemplatesCmd(rt *rootEnv) *cobra.Command {
	var (
		category string
		shared   bool
	)
	list := func(cmd *cobra.Command, _ []string) error {
		f := models.TemplateFilter{Category: category}
		if cmd.Flags().Changed("shared") {
			f.IsShared = &shared
		}
		return rt.report(rt.app.ListTemplates(cmd.Context(), f))
	}

	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Browse and use task templates",
		Args:    cobra.NoArgs,
		RunE:    list,
	}
	listCmd := &cobra.Command{Use: "list", Short: "List templates", Args: cobra.NoArgs, RunE: list}
	for _, c := range []*cobra.Command{cmd, listCmd} {
		c.Flags().StringVar(&category, "category", "", "only this category")
		c.Flags().BoolVar(&shared, "shared", false, "only shared (or, with =false, private) templates")
	}

	cmd.AddCommand(listCmd, idCmd("use <id>", "Create a task from a template", func(ctx context.Context, id int64) error {
		return rt.app.UseTemplate(ctx, id)
	}, rt))
	return cmd
}

func newChatCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.report(rt.app.Chat(cmd.Context(), joinArgs(args)))
		},
	}
}

func newGenerateCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <project-id> <prompt>",
		Short: "Let the assistant create tasks in a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := parseID(args[:1])
			if !ok {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			return rt.report(rt.app.GenerateTasks(cmd.Context(), joinArgs(args[1:]), id))
		},
	}
}

func newVersionCmd(rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		Run: func(*cobra.Command, []string) {
			buildinfo.PrintBuildData(rt.out)
		},
	}
}

func idCmd(use, short string, fn func(ctx context.Context, id int64) error, rt *rootEnv) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return rt.report(fn(cmd.Context(), id))
		},
	}
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// needsApp reports whether cmd talks to the backend. Help, completion and
// version run without a state directory.
func needsApp(cmd *cobra.Command) bool {
	if cmd.Annotations[skipAppAnnotation] != "" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}
