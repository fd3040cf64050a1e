package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/imramugh/ai-task-manager/internal/filex"
)

// DefaultCookieTTL bounds how long a token cookie lives.
const DefaultCookieTTL = 7 * 24 * time.Hour

// CookieBackend keeps short-lived values as cookies in a jar file, one
// Set-Cookie line per cookie. Values are stored query-escaped so any string
// round-trips. Expired cookies read as absent.
type CookieBackend struct {
	mu     sync.Mutex
	path   string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewCookieBackend stores cookies at path. secure marks them Secure, which is
// what production deployments want.
func NewCookieBackend(path string, ttl time.Duration, secure bool) *CookieBackend {
	if ttl <= 0 {
		ttl = DefaultCookieTTL
	}
	return &CookieBackend{path: path, ttl: ttl, secure: secure, now: time.Now}
}

func (b *CookieBackend) Name() string { return "cookie" }

func (b *CookieBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	jar, err := b.load()
	if err != nil {
		return "", false, err
	}
	c, ok := jar[key]
	if !ok {
		return "", false, nil
	}
	if !c.Expires.IsZero() && !b.now().Before(c.Expires) {
		delete(jar, key)
		if err := b.save(jar); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		// Written before values were escaped.
		return c.Value, true, nil
	}
	return v, true, nil
}

func (b *CookieBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = b.ttl
	}
	c := &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		Expires:  b.now().Add(ttl).UTC().Truncate(time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   b.secure,
	}
	if err := c.Valid(); err != nil {
		return fmt.Errorf("cookie %s: %w", key, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	jar, err := b.load()
	if err != nil {
		return err
	}
	jar[key] = c
	return b.save(jar)
}

func (b *CookieBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	jar, err := b.load()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := jar[k]; ok {
			delete(jar, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return b.save(jar)
}

// Cookie returns the stored cookie for key, expired or not. Its Value is the
// escaped form.
func (b *CookieBackend) Cookie(key string) (*http.Cookie, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	jar, err := b.load()
	if err != nil {
		return nil, false, err
	}
	c, ok := jar[key]
	return c, ok, nil
}

func (b *CookieBackend) load() (map[string]*http.Cookie, error) {
	jar := make(map[string]*http.Cookie)

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return jar, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie jar: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		c, err := http.ParseSetCookie(line)
		if err != nil {
			// A corrupt line loses that cookie only.
			continue
		}
		jar[c.Name] = c
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan cookie jar: %w", err)
	}
	return jar, nil
}

func (b *CookieBackend) save(jar map[string]*http.Cookie) error {
	var buf bytes.Buffer
	for _, c := range jar {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}

	dir, err := filex.EnsureDir(filepath.Dir(b.path))
	if err != nil {
		return fmt.Errorf("create cookie dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cookies-*")
	if err != nil {
		return fmt.Errorf("write cookie jar: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cookie jar: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cookie jar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cookie jar: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("write cookie jar: %w", err)
	}
	return nil
}
