package memory

import (
	"context"
	"sync"
)

// SequenceAllocator is a mutex-guarded counter per collection
type SequenceAllocator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequenceAllocator creates an allocator starting every collection at 1
func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{counters: make(map[string]int64)}
}

// Next returns the next id for collection
func (s *SequenceAllocator) Next(_ context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[collection]++
	return s.counters[collection], nil
}
