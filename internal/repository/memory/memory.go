// Package memory keeps profile namespaces in process memory. Everything is
// lost when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/garnizeh/ideabridge/pkg/repository"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

var (
	_ repository.Profiles = (*Store)(nil)
	_ repository.Dropper  = (*Store)(nil)
)

func New() *Store {
	return &Store{data: make(map[string]map[string]string)}
}

func (s *Store) Profile(id string) repository.KV {
	return &profileKV{store: s, profile: id}
}

func (s *Store) DropProfile(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.data[id])
	delete(s.data, id)
	return n, nil
}

// Close drops all namespaces.
func (s *Store) Close() error {
	s.mu.Lock()
	s.data = make(map[string]map[string]string)
	s.mu.Unlock()
	return nil
}

type profileKV struct {
	store   *Store
	profile string
}

func (p *profileKV) Get(ctx context.Context, key string) (string, bool, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()
	v, ok := p.store.data[p.profile][key]
	return v, ok, nil
}

func (p *profileKV) Set(ctx context.Context, key, value string) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	ns, ok := p.store.data[p.profile]
	if !ok {
		ns = make(map[string]string)
		p.store.data[p.profile] = ns
	}
	ns[key] = value
	return nil
}

func (p *profileKV) Delete(ctx context.Context, key string) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	delete(p.store.data[p.profile], key)
	return nil
}
