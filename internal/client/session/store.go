// Package session owns the client's authentication state: the access token,
// the time it was issued and a cached copy of the user's profile.
//
// The token is written to two backends. The cookie backend holds it with a
// bounded expiry; the local backend holds it durably together with the
// profile. Reads consult the cookie first and fall back to local storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/common"
	"github.com/imramugh/ai-task-manager/internal/logging"
)

// DefaultMaxTokenAge is how long after login a token is trusted locally.
const DefaultMaxTokenAge = 30 * 24 * time.Hour

// Store is the session surface the rest of the client depends on.
type Store interface {
	Login(ctx context.Context, token string, ttl time.Duration) error
	Logout(ctx context.Context) error
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	CachedUser(ctx context.Context) (*models.User, bool)
	SaveUser(ctx context.Context, u *models.User) error
	SaveUserFor(ctx context.Context, token string, u *models.User) error
	Token(ctx context.Context) (string, bool)
}

// UserFetcher loads the profile of the session's user.
type UserFetcher interface {
	Me(ctx context.Context) (*models.User, error)
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func WithNavigator(n navigation.Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

func WithUserFetcher(f UserFetcher) Option {
	return func(m *Manager) { m.fetcher = f }
}

// WithCookieTTL sets the expiry used by Login when the caller passes none.
func WithCookieTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.cookieTTL = d
		}
	}
}

// WithMaxTokenAge bounds how long a token is considered valid after login.
// Zero disables the check.
func WithMaxTokenAge(d time.Duration) Option {
	return func(m *Manager) { m.maxTokenAge = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager is the process-wide Store.
type Manager struct {
	mu          sync.Mutex
	cookie      Backend
	local       Backend
	fetcher     UserFetcher
	nav         navigation.Navigator
	log         logging.Logger
	cookieTTL   time.Duration
	maxTokenAge time.Duration
	now         func() time.Time
}

var _ Store = (*Manager)(nil)

// NewManager builds a Manager over the cookie and local backends. Either may
// be nil; reads then skip it.
func NewManager(cookie, local Backend, opts ...Option) *Manager {
	m := &Manager{
		cookie:      cookie,
		local:       local,
		log:         logging.Discard(),
		cookieTTL:   DefaultCookieTTL,
		maxTokenAge: DefaultMaxTokenAge,
		now:         time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// BindUserFetcher sets the profile source after construction. The HTTP
// client reads tokens from the Manager, and the fetcher is built on that
// client, so one of the two has to be wired late.
func (m *Manager) BindUserFetcher(f UserFetcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetcher = f
}

// BindNavigator sets where Logout sends the user.
func (m *Manager) BindNavigator(n navigation.Navigator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = n
}

func (m *Manager) tokenBackends() []Backend {
	out := make([]Backend, 0, 2)
	for _, b := range []Backend{m.cookie, m.local} {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Token returns the first token found, cookie first. A token found only in a
// later backend is copied back into the earlier ones.
func (m *Manager) Token(ctx context.Context) (string, bool) {
	backends := m.tokenBackends()
	for i, b := range backends {
		v, ok, err := b.Get(ctx, common.TokenKey)
		if err != nil {
			m.log.Warn(ctx, "session backend read failed", "backend", b.Name(), "error", err)
			continue
		}
		if !ok || v == "" {
			continue
		}
		for _, earlier := range backends[:i] {
			if err := earlier.Set(ctx, common.TokenKey, v, m.cookieTTL); err != nil {
				m.log.Debug(ctx, "session token mirror failed", "backend", earlier.Name(), "error", err)
			}
		}
		return v, true
	}
	return "", false
}

// Login stores token in every backend, then tries to cache the profile. A
// failed profile fetch is logged; the login itself still succeeds.
func (m *Manager) Login(ctx context.Context, token string, ttl time.Duration) error {
	if token == "" {
		return common.ErrInvalidToken
	}
	if ttl <= 0 {
		ttl = m.cookieTTL
	}

	m.mu.Lock()
	fetcher := m.fetcher
	err := m.storeToken(ctx, token, ttl)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if fetcher == nil {
		return nil
	}
	u, err := fetcher.Me(ctx)
	if err != nil {
		m.log.Warn(ctx, "profile fetch after login failed", "error", err)
		return nil
	}
	if err := m.SaveUserFor(ctx, token, u); err != nil {
		if errors.Is(err, common.ErrSessionChanged) {
			m.log.Debug(ctx, "session ended before the profile arrived")
			return nil
		}
		m.log.Warn(ctx, "profile cache write failed", "error", err)
	}
	return nil
}

func (m *Manager) storeToken(ctx context.Context, token string, ttl time.Duration) error {
	// A profile left over from an earlier session must not outlive it.
	if m.local != nil {
		if err := m.local.Delete(ctx, common.UserKey); err != nil {
			return fmt.Errorf("drop cached profile: %w", err)
		}
	}
	for _, b := range m.tokenBackends() {
		if err := b.Set(ctx, common.TokenKey, token, ttl); err != nil {
			return fmt.Errorf("store token in %s: %w", b.Name(), err)
		}
	}
	if m.local != nil {
		ts := strconv.FormatInt(m.now().UnixMilli(), 10)
		if err := m.local.Set(ctx, common.TokenTimestampKey, ts, 0); err != nil {
			return fmt.Errorf("store token timestamp: %w", err)
		}
	}
	return nil
}

// IsAuthenticated reports whether a usable token is held locally. It never
// calls the server. A token whose JWT exp has passed, or that was stored more
// than MaxTokenAge ago, clears the session and reports false.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, ok := m.Token(ctx)
	if !ok {
		return false
	}
	if err := m.checkToken(ctx, token); err != nil {
		m.log.Info(ctx, "dropping local session", "reason", err)
		if cerr := m.Clear(ctx); cerr != nil {
			m.log.Warn(ctx, "session clear failed", "error", cerr)
		}
		return false
	}
	return true
}

func (m *Manager) checkToken(ctx context.Context, token string) error {
	now := m.now()

	var claims jwt.RegisteredClaims
	// Opaque tokens are allowed; only a parseable exp is enforced.
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil {
		if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
			return common.ErrTokenExpired
		}
	}

	if m.maxTokenAge <= 0 || m.local == nil {
		return nil
	}
	raw, ok, err := m.local.Get(ctx, common.TokenTimestampKey)
	if err != nil || !ok {
		return nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	if now.Sub(time.UnixMilli(ms)) > m.maxTokenAge {
		return common.ErrTokenExpired
	}
	return nil
}

// CachedUser returns the stored profile without network I/O. A missing or
// unreadable profile yields (nil, false).
func (m *Manager) CachedUser(ctx context.Context) (*models.User, bool) {
	if m.local == nil {
		return nil, false
	}
	raw, ok, err := m.local.Get(ctx, common.UserKey)
	if err != nil {
		m.log.Warn(ctx, "cached profile read failed", "error", err)
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		m.log.Warn(ctx, "cached profile is malformed", "error", err)
		return nil, false
	}
	return &u, true
}

func (m *Manager) SaveUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("session: nil user")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUser(ctx, u)
}

// SaveUserFor caches u only while token is still the session's token. A
// profile fetched for a session that has since been cleared or replaced is
// dropped with ErrSessionChanged.
func (m *Manager) SaveUserFor(ctx context.Context, token string, u *models.User) error {
	if u == nil {
		return errors.New("session: nil user")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.Token(ctx); !ok || current != token {
		return common.ErrSessionChanged
	}
	return m.saveUser(ctx, u)
}

func (m *Manager) saveUser(ctx context.Context, u *models.User) error {
	if m.local == nil {
		return nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := m.local.Set(ctx, common.UserKey, string(b), 0); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}

// Clear removes the token, its timestamp and the cached profile from every
// backend. It does not navigate.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, b := range m.tokenBackends() {
		if err := b.Delete(ctx, common.TokenKey, common.TokenTimestampKey, common.UserKey); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", b.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Logout clears the session and shows the login view. Calling it with no
// session is harmless.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.Clear(ctx)

	m.mu.Lock()
	nav := m.nav
	m.mu.Unlock()
	if nav != nil {
		nav.Navigate(navigation.ViewLogin)
	}
	return err
}
