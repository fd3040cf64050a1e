package client

import (
	"net/http"
	"time"

	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/logging"
)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests to the caller's
// context and the transport.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSessionClearer sets what gets wiped when the server answers 401.
func WithSessionClearer(s SessionClearer) Option {
	return func(c *HTTPClient) { c.clearer = s }
}

// WithNavigator sets where the login redirect goes after a 401.
func WithNavigator(n navigation.Navigator) Option {
	return func(c *HTTPClient) { c.nav = n }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}
