package conversation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"voyago/models"
)

// MemoryStore is the in-process Store used by tests and local development.
// Threads never expire. Values are deep-copied through JSON so callers
// cannot mutate stored state in place.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, threadID string) (*models.Thread, error) {
	s.mu.RLock()
	data, ok := s.threads[threadID]
	s.mu.RUnlock()
	if !ok {
		return models.NewThread(threadID), nil
	}
	var thread models.Thread
	if err := json.Unmarshal(data, &thread); err != nil {
		return nil, &StoreError{Op: "decode", Err: err}
	}
	return &thread, nil
}

func (s *MemoryStore) Save(_ context.Context, thread *models.Thread) error {
	thread.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(thread)
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}
	s.mu.Lock()
	s.threads[thread.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, threadID string) error {
	s.mu.Lock()
	delete(s.threads, threadID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.threads))
	for id := range s.threads {
		ids = append(ids, id)
	}
	return ids, nil
}
