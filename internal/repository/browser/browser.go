// Package browser binds the store to the browser's localStorage when the
// client is compiled to WebAssembly with go-app. Values are written as raw
// JSON so the key layout matches what the JavaScript client persisted.
package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/garnizeh/ideabridge/pkg/repository"
)

// Storage is the subset of app.BrowserStorage the KV needs.
type Storage interface {
	Set(k string, v any) error
	Get(k string, v any) error
	Del(k string)
	Contains(k string) bool
}

type KV struct {
	storage Storage
}

var _ repository.KV = (*KV)(nil)

// New wraps s. A nil storage behaves as an unavailable backend.
func New(s Storage) *KV {
	return &KV{storage: s}
}

// LocalStorage binds to the page's localStorage.
func LocalStorage(ctx app.Context) *KV {
	return New(ctx.LocalStorage())
}

// SessionStorage binds to the page's sessionStorage.
func SessionStorage(ctx app.Context) *KV {
	return New(ctx.SessionStorage())
}

func (b *KV) Get(ctx context.Context, key string) (string, bool, error) {
	if b.storage == nil {
		return "", false, repository.ErrUnavailable
	}
	if !b.storage.Contains(key) {
		return "", false, nil
	}
	var raw json.RawMessage
	if err := b.storage.Get(key, &raw); err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(raw), true, nil
}

func (b *KV) Set(ctx context.Context, key, value string) error {
	if b.storage == nil {
		return repository.ErrUnavailable
	}
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("set %s: value is not JSON", key)
	}
	if err := b.storage.Set(key, json.RawMessage(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (b *KV) Delete(ctx context.Context, key string) error {
	if b.storage == nil {
		return repository.ErrUnavailable
	}
	b.storage.Del(key)
	return nil
}

// Profiles exposes a single browser storage as repository.Profiles. A browser
// holds exactly one profile, so the id is ignored.
type Profiles struct {
	KV *KV
}

func (p Profiles) Profile(string) repository.KV {
	return p.KV
}
