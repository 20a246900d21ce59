package imagestore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
)

// MemoryStorage keeps photos in memory and hands out URLs under baseURL.
type MemoryStorage struct {
	mu      sync.RWMutex
	blobs   map[string]storedBlob
	baseURL string
}

type storedBlob struct {
	data        []byte
	contentType string
}

// NewMemoryStorage constructs storage serving objects from baseURL.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob), baseURL: baseURL}
}

// Put stores the blob and returns its URL.
func (s *MemoryStorage) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.blobs[key] = storedBlob{data: cp, contentType: contentType}
	s.mu.Unlock()
	return joinURL(s.baseURL, key), nil
}

// Open returns a reader for the stored blob.
func (s *MemoryStorage) Open(_ context.Context, key string) (Object, error) {
	s.mu.RLock()
	blob, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return Object{}, ErrNotFound
	}
	return Object{
		Body:        io.NopCloser(bytes.NewReader(blob.data)),
		ContentType: blob.contentType,
		Size:        int64(len(blob.data)),
	}, nil
}

// Delete removes the blob.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}

var _ analyzer.ImageStorage = (*MemoryStorage)(nil)
