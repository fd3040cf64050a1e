package session

import (
	"context"
	"time"

	"github.com/imramugh/ai-task-manager/internal/client/repositories/localstorage"
)

// PersistentBackend stores values in local storage with no expiry.
type PersistentBackend struct {
	repo localstorage.Repository
}

func NewPersistentBackend(repo localstorage.Repository) *PersistentBackend {
	return &PersistentBackend{repo: repo}
}

func (b *PersistentBackend) Name() string { return "local" }

func (b *PersistentBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return b.repo.Get(ctx, key)
}

func (b *PersistentBackend) Set(ctx context.Context, key, value string, _ time.Duration) error {
	return b.repo.Set(ctx, key, value)
}

func (b *PersistentBackend) Delete(ctx context.Context, keys ...string) error {
	return b.repo.Delete(ctx, keys...)
}
