package runs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dealertrack/internal/pipeline"
)

// Store retains processing results in memory, keyed by run id. Results
// live until explicitly deleted or purged by the retention scheduler.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*pipeline.Result
}

func NewStore() *Store {
	return &Store{runs: make(map[string]*pipeline.Result)}
}

// Add stores a result and returns its generated run id.
func (s *Store) Add(result *pipeline.Result) string {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = result
	return id
}

// Get returns the result for a run id.
func (s *Store) Get(id string) (*pipeline.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[id]
	return result, ok
}

// Delete removes a run.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return false
	}
	delete(s.runs, id)
	return true
}

// Len returns the number of retained runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// PurgeOlderThan drops runs created before the retention window and
// returns how many were removed.
func (s *Store) PurgeOlderThan(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	for id, result := range s.runs {
		if result.CreatedAt.Before(cutoff) {
			delete(s.runs, id)
			purged++
		}
	}
	return purged
}
