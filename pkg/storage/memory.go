package storage

import (
	"fmt"
	"slices"
	"sync"
)

// MemoryBackend implements Backend with in-memory maps. Nothing persists.
type MemoryBackend struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) CreateBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[string(name)]; !ok {
		m.buckets[string(name)] = make(map[string][]byte)
	}
	return nil
}

func (m *MemoryBackend) DeleteBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, string(name))
	return nil
}

func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}
	bkt[string(key)] = slices.Clone(value)
	return nil
}

func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return nil, err
	}
	v, ok := bkt[string(key)]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (m *MemoryBackend) Delete(bucket, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}
	delete(bkt, string(key))
	return nil
}

// ForEach matches bbolt and visits keys in sorted order.
func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(bkt))
	for k := range bkt {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := fn([]byte(k), bkt[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryBackend) Batch(bucket []byte, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}
	for k, v := range entries {
		bkt[k] = slices.Clone(v)
	}
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

// bucket must be called with mu held.
func (m *MemoryBackend) bucket(name []byte) (map[string][]byte, error) {
	bkt, ok := m.buckets[string(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}
