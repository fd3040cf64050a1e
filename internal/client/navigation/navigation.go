// Package navigation names the views of the client and the Navigator that
// switches between them. Library code never prints or exits on auth failure;
// it asks the Navigator to show the login view instead.
package navigation

import "sync"

type View string

const (
	ViewLogin         View = "/login"
	ViewRegister      View = "/register"
	ViewResetPassword View = "/reset-password"
	ViewDashboard     View = "/dashboard"
	ViewTasks         View = "/tasks"
	ViewProjects      View = "/projects"
	ViewTemplates     View = "/templates"
	ViewAssistant     View = "/ai"
)

// IsAuthView reports whether v is the login or register page. A 401 seen
// while on one of these must not redirect again.
func IsAuthView(v View) bool {
	switch v {
	case ViewLogin, ViewRegister:
		return true
	}
	return false
}

type Navigator interface {
	CurrentView() View
	Navigate(v View)
}

// Recorder is a Navigator that remembers every navigation. Safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	current View
	history []View
}

func NewRecorder(start View) *Recorder {
	return &Recorder{current: start}
}

func (r *Recorder) CurrentView() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Recorder) Navigate(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = v
	r.history = append(r.history, v)
}

// History returns a copy of the recorded navigations.
func (r *Recorder) History() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]View, len(r.history))
	copy(out, r.history)
	return out
}
