package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/imramugh/ai-task-manager/internal/client/debounce"
	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/logging"
)

// DefaultPerPage is the page size used when a blank query restores the list.
const DefaultPerPage = 20

// SearchResult is one answered query. Filtered is false when the query was
// blank and Tasks is the first page of the unfiltered list.
type SearchResult struct {
	Query    string
	Filtered bool
	Tasks    []models.Task
	Total    int
	Err      error
}

// SearchService answers search-box input. Type debounces keystrokes; Query
// runs one search immediately.
type SearchService struct {
	api      TasksAPI
	fields   []string
	perPage  int
	log      logging.Logger
	onResult func(SearchResult)

	debouncer *debounce.Debouncer[string]

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64
	closed bool

	// queried runs after a dispatched search returns, before delivery.
	queried func(q string)
}

// NewSearchService delivers debounced results to onResult. fields limits the
// searched fields; nil searches them all. onResult must not call back into
// the service.
func NewSearchService(ctx context.Context, api TasksAPI, delay time.Duration, fields []string,
	log logging.Logger, onResult func(SearchResult)) *SearchService {
	if log == nil {
		log = logging.Discard()
	}
	s := &SearchService{
		api:      api,
		fields:   fields,
		perPage:  DefaultPerPage,
		log:      log,
		onResult: onResult,
		ctx:      ctx,
	}
	s.debouncer = debounce.New(delay, s.dispatch)
	return s
}

// Query runs q now. A blank query restores the unfiltered first page rather
// than searching for nothing.
func (s *SearchService) Query(ctx context.Context, q string) SearchResult {
	q = strings.TrimSpace(q)
	if q == "" {
		page, err := s.api.ListPage(ctx, models.TaskListParams{Page: 1, PerPage: s.perPage})
		if err != nil {
			return SearchResult{Err: err}
		}
		return SearchResult{Tasks: page.Items, Total: page.Total}
	}

	tasks, err := s.api.Search(ctx, models.SearchQuery{Q: q, SearchIn: s.fields})
	if err != nil {
		return SearchResult{Query: q, Filtered: true, Err: err}
	}
	return SearchResult{Query: q, Filtered: true, Tasks: tasks, Total: len(tasks)}
}

// Type feeds one keystroke's worth of input. Only the last input of a burst
// is searched, and a search still in flight is abandoned.
func (s *SearchService) Type(q string) {
	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.debouncer.Call(q)
}

// Flush searches the pending input now.
func (s *SearchService) Flush() bool {
	return s.debouncer.Flush()
}

// Close cancels any in-flight search and drops pending input.
func (s *SearchService) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.debouncer.Stop()
}

func (s *SearchService) dispatch(q string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()
	defer cancel()

	res := s.Query(ctx, q)
	if s.queried != nil {
		s.queried(q)
	}

	// Delivery holds mu so a Type that lands now waits for it or wins.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen || ctx.Err() != nil {
		return
	}
	if res.Err != nil {
		s.log.Debug(ctx, "search failed", "query", q, "error", res.Err)
	}
	if s.onResult != nil {
		s.onResult(res)
	}
}
