package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls    []string
	reported []error
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool      { return f.loggedIn }
func (f *fakeExec) reportError(err error) { f.reported = append(f.reported, err) }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error        { return f.record("whoami") }
func (f *fakeExec) ResetPassword(context.Context) error { return f.record("reset") }
func (f *fakeExec) ListTasks(_ context.Context, p models.TaskListParams) error {
	if p.Completed == nil {
		return f.record("list")
	}
	return f.record("list completed=%t", *p.Completed)
}
func (f *fakeExec) ShowTask(_ context.Context, id int64) error   { return f.record("show %d", id) }
func (f *fakeExec) ToggleTask(_ context.Context, id int64) error { return f.record("done %d", id) }
func (f *fakeExec) DeleteTask(_ context.Context, id int64) error { return f.record("rm %d", id) }
func (f *fakeExec) AddTask(_ context.Context, in models.TaskCreate) error {
	return f.record("add %s", in.Title)
}
func (f *fakeExec) SearchTasks(_ context.Context, q string, _ []string) error {
	return f.record("search %q", q)
}
func (f *fakeExec) LiveSearch(context.Context, []string) error { return f.record("find") }
func (f *fakeExec) ListProjects(context.Context) error         { return f.record("projects") }
func (f *fakeExec) ListTemplates(context.Context, models.TemplateFilter) error {
	return f.record("templates")
}
func (f *fakeExec) UseTemplate(_ context.Context, id int64) error { return f.record("use %d", id) }
func (f *fakeExec) Chat(_ context.Context, msg string) error      { return f.record("chat %s", msg) }
func (f *fakeExec) GenerateTasks(_ context.Context, prompt string, projectID int64) error {
	return f.record("generate %d %s", projectID, prompt)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"list",
		"l open",
		"list done",
		"show 12",
		"add Buy oat milk",
		"done 12",
		"rm 12",
		"search  milk  ",
		"search",
		"find",
		"projects",
		"templates",
		"use 4",
		"chat what next?",
		"generate 3 plan the launch",
		"whoami",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, []string{
		"login",
		"list",
		"list completed=false",
		"list completed=true",
		"show 12",
		"add Buy oat milk",
		"done 12",
		"rm 12",
		`search "milk"`,
		`search ""`,
		"find",
		"projects",
		"templates",
		"use 4",
		"chat what next?",
		"generate 3 plan the launch",
		"whoami",
		"logout",
	}, exec.calls)

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Bye!")
	assert.Empty(t, exec.reported)
}

func TestRunREPL_UsageErrors(t *testing.T) {
	out := captureOutput(t)

	input := "show\nshow abc\ndone -1\nadd\nlist later\ngenerate 3\ngenerate x plan\nfoobar\nquit\n"
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: show <id>")
	assert.Contains(t, *out, "Usage: done <id>")
	assert.Contains(t, *out, "Usage: add <title>")
	assert.Contains(t, *out, "Usage: list [open|done|all]")
	assert.Contains(t, *out, "Usage: generate <project-id> <text>")
	assert.Contains(t, *out, "Unknown command: foobar")
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	captureOutput(t)

	boom := errors.New("boom")
	exec := &fakeExec{loggedIn: true, failWith: boom}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("list\nprojects\n"))

	require.Len(t, exec.reported, 2)
	assert.ErrorIs(t, exec.reported[0], boom)
	assert.Equal(t, []string{"list", "projects"}, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(alice /tasks)" }, rdr("exit\n"))

	require.NotEmpty(t, *out)
	assert.Equal(t, "tp (alice /tasks) > ", (*out)[0])
}

func TestListParams(t *testing.T) {
	p, ok := listParams(nil)
	require.True(t, ok)
	assert.Nil(t, p.Completed)

	p, ok = listParams([]string{"all"})
	require.True(t, ok)
	assert.Nil(t, p.Completed)

	_, ok = listParams([]string{"soon"})
	assert.False(t, ok)
}
