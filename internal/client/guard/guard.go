// Package guard gates protected views on the session. Entering a view shows
// the cached profile immediately when there is one and confirms it with the
// server in the background; without a cached profile it waits for the server.
package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/client/session"
	"github.com/imramugh/ai-task-manager/internal/common"
	"github.com/imramugh/ai-task-manager/internal/logging"
)

// Future is the pending outcome of a profile revalidation.
type Future struct {
	once sync.Once
	done chan struct{}
	user *models.User
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(u *models.User, err error) {
	f.once.Do(func() {
		f.user, f.err = u, err
		close(f.done)
	})
}

// Done is closed once the revalidation has been reconciled.
func (f *Future) Done() <-chan struct{} { return f.done }

// Await blocks until the revalidation finishes or ctx ends.
func (f *Future) Await(ctx context.Context) (*models.User, error) {
	select {
	case <-f.done:
		return f.user, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsComplete reports whether the revalidation has finished, without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Entry is what a protected view gets to render with.
type Entry struct {
	User *models.User
	// Optimistic is set when User came from the local cache and the server
	// has not confirmed it yet.
	Optimistic bool

	rev *Future
}

func (e *Entry) Revalidation() *Future { return e.rev }

type Guard struct {
	store   session.Store
	fetcher session.UserFetcher
	nav     navigation.Navigator
	log     logging.Logger
}

func New(store session.Store, fetcher session.UserFetcher, nav navigation.Navigator, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Discard()
	}
	return &Guard{store: store, fetcher: fetcher, nav: nav, log: log}
}

// Enter admits the caller to a protected view.
//
// With no local session it navigates to login and returns ErrRedirected.
// With a cached profile it returns at once and revalidates concurrently.
// Otherwise it blocks on revalidation. A failed revalidation logs the user
// out. Cancelling ctx abandons an in-flight revalidation without touching
// the session.
func (g *Guard) Enter(ctx context.Context) (*Entry, error) {
	if !g.store.IsAuthenticated(ctx) {
		g.nav.Navigate(navigation.ViewLogin)
		return nil, common.ErrRedirected
	}

	token, _ := g.store.Token(ctx)
	cached, hasCached := g.store.CachedUser(ctx)
	rev := g.revalidate(ctx, token)

	if hasCached {
		return &Entry{User: cached, Optimistic: true, rev: rev}, nil
	}

	u, err := rev.Await(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, common.ErrRedirected) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrRedirected, err)
	}
	return &Entry{User: u, rev: rev}, nil
}

// revalidate confirms the session that owns token. Its answer is cached only
// if that session is still current when the answer arrives.
func (g *Guard) revalidate(ctx context.Context, token string) *Future {
	f := newFuture()

	go func() {
		if err := ctx.Err(); err != nil {
			f.resolve(nil, err)
			return
		}

		u, err := g.fetcher.Me(ctx)

		// The view went away while we were waiting; its answer no longer matters.
		if cerr := ctx.Err(); cerr != nil {
			f.resolve(nil, cerr)
			return
		}

		if err != nil {
			g.log.Info(ctx, "session revalidation failed, logging out", "error", err)
			if lerr := g.store.Logout(ctx); lerr != nil {
				g.log.Warn(ctx, "logout after failed revalidation", "error", lerr)
			}
			f.resolve(nil, err)
			return
		}

		if err := g.store.SaveUserFor(ctx, token, u); err != nil {
			if errors.Is(err, common.ErrSessionChanged) {
				g.log.Debug(ctx, "session ended during revalidation")
				f.resolve(nil, fmt.Errorf("%w: %w", common.ErrRedirected, err))
				return
			}
			g.log.Warn(ctx, "profile cache write failed", "error", err)
		}
		f.resolve(u, nil)
	}()

	return f
}
