package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	reportError(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ResetPassword(ctx context.Context) error

	ListTasks(ctx context.Context, p models.TaskListParams) error
	ShowTask(ctx context.Context, id int64) error
	AddTask(ctx context.Context, in models.TaskCreate) error
	ToggleTask(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
	SearchTasks(ctx context.Context, q string, fields []string) error
	LiveSearch(ctx context.Context, fields []string) error

	ListProjects(ctx context.Context) error
	ListTemplates(ctx context.Context, f models.TemplateFilter) error
	UseTemplate(ctx context.Context, id int64) error

	Chat(ctx context.Context, message string) error
	GenerateTasks(ctx context.Context, prompt string, projectID int64) error
}

const (
	helpLoggedOut = "Available commands: register, login, reset, exit"
	helpLoggedIn  = "Available commands: (l)ist [open|done], show <id>, add <title>, done <id>, rm <id>, " +
		"search <text>, find, projects, templates, use <id>, chat <text>, generate <project-id> <text>, " +
		"whoami, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Handler errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tp %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if quit := dispatch(ctx, a, cmd, args); quit {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}

	case "register":
		err = a.Register(ctx)

	case "login":
		err = a.Login(ctx)

	case "logout":
		err = a.Logout(ctx)

	case "reset":
		err = a.ResetPassword(ctx)

	case "whoami":
		err = a.WhoAmI(ctx)

	case "l", "list":
		p, ok := listParams(args)
		if !ok {
			printlnFn("Usage: list [open|done|all]")
			return false
		}
		err = a.ListTasks(ctx, p)

	case "show", "done", "rm", "use":
		id, ok := parseID(args)
		if !ok {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return false
		}
		switch cmd {
		case "show":
			err = a.ShowTask(ctx, id)
		case "done":
			err = a.ToggleTask(ctx, id)
		case "rm":
			err = a.DeleteTask(ctx, id)
		case "use":
			err = a.UseTemplate(ctx, id)
		}

	case "add":
		if len(args) == 0 {
			printlnFn("Usage: add <title>")
			return false
		}
		err = a.AddTask(ctx, models.TaskCreate{Title: strings.Join(args, " ")})

	case "search":
		err = a.SearchTasks(ctx, strings.Join(args, " "), nil)

	case "find":
		err = a.LiveSearch(ctx, nil)

	case "projects":
		err = a.ListProjects(ctx)

	case "templates":
		err = a.ListTemplates(ctx, models.TemplateFilter{})

	case "chat":
		err = a.Chat(ctx, strings.Join(args, " "))

	case "generate":
		if len(args) < 2 {
			printlnFn("Usage: generate <project-id> <text>")
			return false
		}
		projectID, ok := parseID(args[:1])
		if !ok {
			printlnFn("Usage: generate <project-id> <text>")
			return false
		}
		err = a.GenerateTasks(ctx, strings.Join(args[1:], " "), projectID)

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	if err != nil {
		a.reportError(err)
	}
	return false
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func listParams(args []string) (models.TaskListParams, bool) {
	var p models.TaskListParams
	if len(args) == 0 {
		return p, true
	}
	switch args[0] {
	case "all":
	case "open":
		p.Completed = models.Ptr(false)
	case "done":
		p.Completed = models.Ptr(true)
	default:
		return p, false
	}
	return p, true
}

// Repl greets the user, offers a login when there is no session and then
// runs the command loop until EOF or exit.
func (a *App) Repl(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to taskpilot (type 'help' for commands)")

	if a.isLoggedIn() {
		if u, ok := a.store.CachedUser(ctx); ok {
			a.setUser(u)
		}
	} else if err := a.Login(ctx); err != nil {
		a.reportError(err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
