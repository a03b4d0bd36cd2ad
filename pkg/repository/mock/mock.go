package mock

import (
	"context"
	"sync"

	"github.com/garnizeh/ideabridge/pkg/repository"
)

// KV is an in-memory repository.KV for tests. Errors can be injected per
// operation and raw values can be planted directly in Data.
type KV struct {
	mu   sync.Mutex
	Data map[string]string

	GetErr    error
	SetErr    error
	DeleteErr error

	Sets int
}

var _ repository.KV = (*KV)(nil)

func NewKV() *KV {
	return &KV{Data: make(map[string]string)}
}

func (m *KV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *KV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Sets++
	m.Data[key] = value
	return nil
}

func (m *KV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Data, key)
	return nil
}

// Raw returns the stored value for key without going through Get.
func (m *KV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

// Profiles is a repository.Profiles backed by mock KVs created on demand.
type Profiles struct {
	mu  sync.Mutex
	KVs map[string]*KV
}

var _ repository.Profiles = (*Profiles)(nil)

func NewProfiles() *Profiles {
	return &Profiles{KVs: make(map[string]*KV)}
}

func (p *Profiles) Profile(id string) repository.KV {
	p.mu.Lock()
	defer p.mu.Unlock()
	kv, ok := p.KVs[id]
	if !ok {
		kv = NewKV()
		p.KVs[id] = kv
	}
	return kv
}
