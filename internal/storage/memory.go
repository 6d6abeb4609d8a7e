package storage

import (
	"sync"

	"baudok-backend/internal/models"
)

type memoryBlob struct {
	data        []byte
	contentType string
}

// MemoryStore is an in-process BlobStore. It backs tests and local runs where
// no Supabase bucket is configured; blobs do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string]memoryBlob),
	}
}

func (s *MemoryStore) Put(id string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[id] = memoryBlob{data: buf, contentType: contentType}
	return nil
}

func (s *MemoryStore) Get(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return blob.data, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, id)
	return nil
}
