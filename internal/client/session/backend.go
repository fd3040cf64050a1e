package session

import (
	"context"
	"time"
)

// Backend is one place a session value can live. Reads that find nothing
// return ok == false and a nil error.
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value. ttl <= 0 means the backend default; backends
	// without expiry ignore it.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
