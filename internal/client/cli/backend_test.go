package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const (
	testUser     = "alice"
	testPassword = "correct horse"
	testToken    = "tok-alice"
)

// fakeBackend is an in-memory stand-in for the task manager REST API.
type fakeBackend struct {
	mu       sync.Mutex
	revoked  bool
	nextID   int64
	tasks    []models.Task
	searches []string
	created  []models.TaskCreate
	chats    []models.ChatMessage
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{nextID: 3, tasks: []models.Task{
		{ID: 1, Title: "Buy milk", Priority: models.PriorityLow, UserID: 1},
		{ID: 2, Title: "Write report", Priority: models.PriorityHigh, UserID: 1, Completed: true},
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("GET /api/auth/me", b.authed(b.me))
	mux.HandleFunc("GET /api/tasks", b.authed(b.listTasks))
	mux.HandleFunc("POST /api/tasks", b.authed(b.createTask))
	mux.HandleFunc("GET /api/tasks/search", b.authed(b.search))
	mux.HandleFunc("GET /api/tasks/{id}", b.authed(b.getTask))
	mux.HandleFunc("PUT /api/tasks/{id}", b.authed(b.updateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", b.authed(b.deleteTask))
	mux.HandleFunc("GET /api/projects", b.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []models.Project{{ID: 7, Name: "Launch", Color: models.DefaultProjectColor}})
	}))
	mux.HandleFunc("POST /api/templates/{id}/use", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Task{ID: 50, Title: "Weekly review " + r.PathValue("id")})
	}))
	mux.HandleFunc("POST /api/ai/chat", b.authed(b.chat))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) Revoke() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked = true
}

func (b *fakeBackend) Searches() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.searches...)
}

func (b *fakeBackend) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		ok := !b.revoked && r.Header.Get("Authorization") == "Bearer "+testToken
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		h(w, r)
	}
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	if r.PostForm.Get("username") != testUser || r.PostForm.Get("password") != testPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: testToken, TokenType: "bearer"})
}

func (b *fakeBackend) me(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.User{
		ID: 1, Email: "alice@example.com", Username: testUser, IsActive: true,
		CreatedAt: models.Time{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
}

func (b *fakeBackend) listTasks(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Task, 0, len(b.tasks))
	completed := r.URL.Query().Get("completed")
	for _, t := range b.tasks {
		if completed != "" && strconv.FormatBool(t.Completed) != completed {
			continue
		}
		out = append(out, t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) search(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	q := r.URL.Query().Get("q")
	b.searches = append(b.searches, q)
	out := []models.Task{}
	for _, t := range b.tasks {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(q)) {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) createTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, in)
	t := models.Task{ID: b.nextID, Title: in.Title, Priority: in.Priority, DueDate: in.DueDate, ProjectID: in.ProjectID}
	b.nextID++
	b.tasks = append(b.tasks, t)
	writeJSON(w, http.StatusCreated, t)
}

func (b *fakeBackend) find(r *http.Request) (int, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	for i, t := range b.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (b *fakeBackend) getTask(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.find(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
		return
	}
	writeJSON(w, http.StatusOK, b.tasks[i])
}

func (b *fakeBackend) updateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.find(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
		return
	}
	if in.Completed != nil {
		b.tasks[i].Completed = *in.Completed
	}
	if in.Title != nil {
		b.tasks[i].Title = *in.Title
	}
	writeJSON(w, http.StatusOK, b.tasks[i])
}

func (b *fakeBackend) deleteTask(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.find(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
		return
	}
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) chat(w http.ResponseWriter, r *http.Request) {
	var msg models.ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	b.mu.Lock()
	b.chats = append(b.chats, msg)
	b.mu.Unlock()

	hours := 2.0
	writeJSON(w, http.StatusOK, models.ChatResponse{
		Content: "Start with the report.",
		Suggestions: []models.TaskSuggestion{
			{Title: "Outline report", Priority: models.PriorityHigh, EstimatedHours: &hours},
		},
	})
}
