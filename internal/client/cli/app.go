package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/imramugh/ai-task-manager/internal/buildinfo"
	"github.com/imramugh/ai-task-manager/internal/client/api"
	"github.com/imramugh/ai-task-manager/internal/client/client"
	"github.com/imramugh/ai-task-manager/internal/client/config"
	"github.com/imramugh/ai-task-manager/internal/client/guard"
	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/client/services"
	"github.com/imramugh/ai-task-manager/internal/client/session"
	"github.com/imramugh/ai-task-manager/internal/filex"
	"github.com/imramugh/ai-task-manager/internal/logging"
)

// ProjectsAPI is the project surface the CLI uses.
type ProjectsAPI interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, in models.ProjectCreate) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// TemplatesAPI is the template surface the CLI uses.
type TemplatesAPI interface {
	List(ctx context.Context, f models.TemplateFilter) ([]models.Template, error)
	Use(ctx context.Context, id int64) (*models.Task, error)
}

type App struct {
	config *config.Config
	log    logging.Logger
	out    io.Writer
	reader *bufio.Reader
	closer io.Closer

	store     session.Store
	guard     *guard.Guard
	auth      services.AuthService
	tasks     services.TaskService
	tasksAPI  services.TasksAPI
	projects  ProjectsAPI
	templates TemplatesAPI
	assistant *services.Assistant

	mu       sync.Mutex
	view     navigation.View
	userName string
}

// NewApp wires local storage, the session store, the HTTP client and the
// services. With c.Ephemeral the session lives in memory and nothing is
// written under the state directory.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	a := &App{
		config: c,
		log:    log,
		out:    &syncWriter{w: out},
		reader: bufio.NewReader(in),
		view:   navigation.ViewDashboard,
	}

	cookie, local, err := a.openBackends(ctx)
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(cookie, local,
		session.WithLogger(log.With("component", "session")),
		session.WithCookieTTL(c.CookieTTL),
		session.WithMaxTokenAge(c.MaxTokenAge),
	)

	httpClient := client.New(c.APIURL, manager,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "http")),
		client.WithSessionClearer(manager),
		client.WithNavigator(a),
		client.WithUserAgent("taskpilot/"+buildinfo.Version),
	)
	endpoints := api.New(httpClient)

	manager.BindUserFetcher(endpoints.Auth)
	manager.BindNavigator(a)

	a.store = manager
	a.guard = guard.New(manager, endpoints.Auth, a, log.With("component", "guard"))
	a.auth = services.NewAuthService(endpoints.Auth, manager, c.CookieTTL)
	a.tasks = services.NewTaskService(endpoints.Tasks)
	a.tasksAPI = endpoints.Tasks
	a.projects = endpoints.Projects
	a.templates = endpoints.Templates
	a.assistant = services.NewAssistant(endpoints.AI, 0)

	return a, nil
}

func (a *App) openBackends(ctx context.Context) (session.Backend, session.Backend, error) {
	if a.config.Ephemeral {
		return session.NewMemoryBackend("cookie", true), session.NewMemoryBackend("local", false), nil
	}

	dir, err := filex.EnsureDir(a.config.StateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("state dir: %w", err)
	}
	a.config.StateDir = dir

	repos, err := client.InitDatabase(ctx, a.config.DatabasePath())
	if err != nil {
		a.log.Error(ctx, "error initializing database", "error", err)
		return nil, nil, err
	}
	a.closer = repos

	cookie := session.NewCookieBackend(a.config.CookieJarPath(), a.config.CookieTTL, a.config.Production)
	return cookie, session.NewPersistentBackend(repos.LocalStorage), nil
}

// Close releases local storage.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// CurrentView implements navigation.Navigator.
func (a *App) CurrentView() navigation.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Navigate implements navigation.Navigator. Leaving for the login view also
// forgets the displayed user name.
func (a *App) Navigate(v navigation.View) {
	a.mu.Lock()
	prev := a.view
	a.view = v
	if v == navigation.ViewLogin {
		a.userName = ""
	}
	a.mu.Unlock()

	if v == navigation.ViewLogin && prev != v {
		fmt.Fprintln(a.out, "Please log in to continue.")
	}
}

// setView moves between views on the user's own request; unlike Navigate it
// prints nothing.
func (a *App) setView(v navigation.View) {
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

func (a *App) setUser(u *models.User) {
	if u == nil {
		return
	}
	a.mu.Lock()
	a.userName = u.Username
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated(context.Background())
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := string(a.view)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// protect runs fn behind the session guard. An optimistic entry is
// revalidated before protect returns, so a dead session is noticed even by
// one-shot commands.
func (a *App) protect(ctx context.Context, view navigation.View, fn func(ctx context.Context) error) error {
	entry, err := a.guard.Enter(ctx)
	if err != nil {
		return err
	}
	a.setUser(entry.User)
	a.setView(view)

	runErr := fn(ctx)

	if entry.Optimistic {
		u, err := entry.Revalidation().Await(ctx)
		if err != nil {
			a.log.Debug(ctx, "session revalidation failed", "error", err)
			return err
		}
		a.setUser(u)
	}
	return runErr
}

// syncWriter serialises output; the session guard may report a logout from
// its revalidation goroutine while a command is printing.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
