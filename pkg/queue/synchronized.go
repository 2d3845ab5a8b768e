package queue

import (
	"iter"
	"sync"
)

// Synchronized decorates another Queue with a mutex, making every contract
// operation safe for concurrent use. Dequeue order is that of the wrapped
// queue. Compound caller sequences (Peek then Dequeue) are not atomic as a
// whole; each operation is individually.
type Synchronized[T any] struct {
	mu    sync.Mutex
	inner Queue[T]
}

// NewSynchronized wraps inner with a mutex. A nil inner defaults to an
// unallocated Ring.
func NewSynchronized[T any](inner Queue[T]) *Synchronized[T] {
	if inner == nil {
		inner = NewRing[T](0)
	}
	return &Synchronized[T]{inner: inner}
}

// Len returns the number of stored elements.
func (s *Synchronized[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Len()
}

// IsEmpty reports whether the wrapped queue holds no elements.
func (s *Synchronized[T]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.IsEmpty()
}

// Cap returns the wrapped queue's capacity.
func (s *Synchronized[T]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Cap()
}

// IsFull reports whether the wrapped queue is at capacity.
func (s *Synchronized[T]) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.IsFull()
}

// Peek returns the next element to dequeue without removing it.
func (s *Synchronized[T]) Peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Peek()
}

// Dequeue removes and returns the front element.
func (s *Synchronized[T]) Dequeue() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Dequeue()
}

// Enqueue stores one element.
func (s *Synchronized[T]) Enqueue(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Enqueue(v)
}

// EnqueueMany stores the elements in argument order as one atomic batch.
func (s *Synchronized[T]) EnqueueMany(vals ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.EnqueueMany(vals...)
}

// EnqueueSeq stores the elements of seq in iteration order as one atomic
// batch. The sequence is consumed while the lock is held.
func (s *Synchronized[T]) EnqueueSeq(seq iter.Seq[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.EnqueueSeq(seq)
}

// Clear removes all elements from the wrapped queue.
func (s *Synchronized[T]) Clear(keepCapacity bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Clear(keepCapacity)
}

// Reserve ensures the wrapped queue can hold at least n elements.
func (s *Synchronized[T]) Reserve(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Reserve(n)
}
