package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// MemoryObject is an object held by MemoryImageStore
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// MemoryImageStore keeps uploads in memory. Used when object storage is
// disabled and in tests.
type MemoryImageStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]MemoryObject
}

// NewMemoryImageStore creates a MemoryImageStore whose URLs start with baseURL
func NewMemoryImageStore(baseURL string) *MemoryImageStore {
	if baseURL == "" {
		baseURL = "memory://images"
	}
	return &MemoryImageStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

// Put stores the object
func (s *MemoryImageStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = MemoryObject{Data: buf.Bytes(), ContentType: contentType}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object
func (s *MemoryImageStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored object
func (s *MemoryImageStore) Get(key string) (MemoryObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

var _ ImageStore = (*MemoryImageStore)(nil)
