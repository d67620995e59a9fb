package database

import (
	"context"
	"errors"
	"sync"
)

// ErrBlobNotFound is returned by Read when a collection was never written.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore persists whole collections as a single serialized value per name.
type BlobStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// AtomicBlobStore runs a read-modify-write of one blob as a unit, also across processes.
// fn gets nil when the blob does not exist; returning nil data writes nothing.
type AtomicBlobStore interface {
	BlobStore
	Modify(ctx context.Context, name string, fn func(data []byte) ([]byte, error)) error
}

// MemoryBlobStore keeps blobs in process memory. Used by STORE_DRIVER=memory and tests.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[name]
	if !ok {
		return nil, ErrBlobNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryBlobStore) Write(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[name] = buf
	return nil
}
