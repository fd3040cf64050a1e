package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/common"
	"github.com/imramugh/ai-task-manager/internal/logging"
)

// TokenSource yields the current session token, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// SessionClearer drops the token and cached profile without navigating.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// HTTPClient is the one path every API call takes. It attaches the bearer
// token, turns every failure into *APIError and tears the session down on 401.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	tokens    TokenSource
	clearer   SessionClearer
	nav       navigation.Navigator
	log       logging.Logger
	userAgent string
}

// New builds a client for baseURL. tokens may be nil, in which case every
// request goes out unauthenticated.
func New(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		tokens:    tokens,
		log:       logging.Discard(),
		userAgent: "taskpilot",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Do sends a JSON request. body is marshalled when non-nil; the response is
// decoded into out when out is non-nil and the body is not empty.
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err), cause: err}
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reader, contentType, out)
}

// DoForm sends form as application/x-www-form-urlencoded.
func (c *HTTPClient) DoForm(ctx context.Context, method, path string, form url.Values, out any) error {
	return c.send(ctx, method, path, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err), cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
		}
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("read response: %v", err), Status: resp.StatusCode, cause: err}
	}

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseErrorBody(resp.StatusCode, raw)
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response: %v", err), Status: resp.StatusCode, cause: err}
	}
	return nil
}

// handleUnauthorized clears the session and sends the user to the login view
// unless they are already on an auth view.
func (c *HTTPClient) handleUnauthorized(ctx context.Context) {
	if c.clearer != nil {
		// The request context may already be done; clearing must still happen.
		if err := c.clearer.Clear(context.WithoutCancel(ctx)); err != nil {
			c.log.Warn(ctx, "failed to clear session after 401", "error", err)
		}
	}
	if c.nav == nil {
		return
	}
	if navigation.IsAuthView(c.nav.CurrentView()) {
		return
	}
	c.nav.Navigate(navigation.ViewLogin)
}

func transportError(err error) *APIError {
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Err.Error()
	}
	return &APIError{Message: msg, cause: err}
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Code   string          `json:"code"`
	Field  string          `json:"field"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func parseErrorBody(status int, raw []byte) *APIError {
	e := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		e.Code = body.Code
		e.Field = body.Field
		e.Message = detailMessage(body.Detail, e)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("request failed with status code %d", status)
	}
	return e
}

// detailMessage reads detail either as a plain string or as a validation list,
// in which case the first item supplies the message and, when unset, the field.
func detailMessage(detail json.RawMessage, e *APIError) string {
	if len(detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(detail, &s); err == nil {
		return s
	}
	var items []validationItem
	if err := json.Unmarshal(detail, &items); err == nil && len(items) > 0 {
		first := items[0]
		if e.Field == "" && len(first.Loc) > 0 {
			e.Field = fmt.Sprint(first.Loc[len(first.Loc)-1])
		}
		if e.Code == "" {
			e.Code = CodeValidation
		}
		return first.Msg
	}
	return ""
}
