package memory

import (
	"context"
	"encoding/json"
	"sync"

	"omdb_proxy/cache"
)

// Service implements cache.Service in process memory. Entries are never
// evicted and live until the process exits.
type Service struct {
	mu   sync.RWMutex
	data map[cache.Key]json.RawMessage
}

// New creates an empty in-memory cache
func New() *Service {
	return &Service{data: make(map[cache.Key]json.RawMessage)}
}

// Get implements cache.Service
func (s *Service) Get(_ context.Context, key cache.Key) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return body, true, nil
}

// Set implements cache.Service
func (s *Service) Set(_ context.Context, key cache.Key, body json.RawMessage) error {
	stored := make(json.RawMessage, len(body))
	copy(stored, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = stored
	return nil
}

// Len returns the number of cached entries.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

var _ cache.Service = (*Service)(nil)
