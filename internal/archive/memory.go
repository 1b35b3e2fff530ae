package archive

import (
	"context"
	"sync"
)

// MemoryProvider keeps snapshots in a map. Intended for tests.
type MemoryProvider struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryProvider returns an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{objects: make(map[string][]byte)}
}

// Save stores a copy of data under objectName.
func (p *MemoryProvider) Save(_ context.Context, objectName string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects[objectName] = append([]byte(nil), data...)
	return nil
}

// Object returns the stored bytes for objectName and whether it exists.
func (p *MemoryProvider) Object(objectName string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.objects[objectName]
	return data, ok
}

// Len reports how many objects have been stored.
func (p *MemoryProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.objects)
}
