package csync

import (
	"iter"
	"slices"
	"sync"
)

// Slice is a generic slice guarded by an RWMutex.
type Slice[T any] struct {
	mu sync.RWMutex
	s  []T
}

// NewSlice creates an empty slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

// NewSliceFrom copies the given slice.
func NewSliceFrom[T any](s []T) *Slice[T] {
	return &Slice[T]{s: slices.Clone(s)}
}

// Append adds items to the end.
func (s *Slice[T]) Append(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = append(s.s, items...)
}

// Prepend adds an item at the front.
func (s *Slice[T]) Prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = append([]T{item}, s.s...)
}

// Delete removes the item at index; out-of-range indices are ignored.
func (s *Slice[T]) Delete(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.s) {
		return
	}
	s.s = slices.Delete(s.s, index, index+1)
}

// Get returns the item at index, reporting whether it exists.
func (s *Slice[T]) Get(index int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.s) {
		var zero T
		return zero, false
	}
	return s.s[index], true
}

// Set replaces the item at index; out-of-range indices are ignored.
func (s *Slice[T]) Set(index int, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.s) {
		return
	}
	s.s[index] = item
}

// SetSlice replaces the whole contents with a copy of items.
func (s *Slice[T]) SetSlice(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = slices.Clone(items)
}

// Len returns the number of items.
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.s)
}

// Seq iterates over a snapshot of the items.
func (s *Slice[T]) Seq() iter.Seq[T] {
	s.mu.RLock()
	snapshot := slices.Clone(s.s)
	s.mu.RUnlock()
	return slices.Values(snapshot)
}

// SeqWithIndex iterates over a snapshot of the items with their indices.
func (s *Slice[T]) SeqWithIndex() iter.Seq2[int, T] {
	s.mu.RLock()
	snapshot := slices.Clone(s.s)
	s.mu.RUnlock()
	return slices.All(snapshot)
}
