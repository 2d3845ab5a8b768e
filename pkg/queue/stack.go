package queue

import (
	"iter"

	"github.com/pkg/errors"
)

// Stack is a slice-backed LIFO queue: Dequeue returns elements in the
// REVERSE of enqueue order. It shares the contract and growth policy with
// Ring and exists because dequeue order is a property of the concrete type,
// not of the contract.
// It is NOT thread-safe.
type Stack[T any] struct {
	items []T // the top of the stack is items[len(items)-1]
}

// NewStack creates a Stack with at least the given initial capacity, rounded
// up to a power of two. A capacity <= 0 creates an unallocated stack.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity <= 0 {
		return &Stack[T]{}
	}
	return &Stack[T]{items: make([]T, 0, ceilPow2(capacity))}
}

// Len returns the number of stored elements.
func (s *Stack[T]) Len() int { return len(s.items) }

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool { return len(s.items) == 0 }

// Cap returns the number of elements storable without reallocation.
func (s *Stack[T]) Cap() int { return cap(s.items) }

// IsFull reports whether the next Enqueue would grow the storage.
func (s *Stack[T]) IsFull() bool { return len(s.items) == cap(s.items) }

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Dequeue removes and returns the most recently enqueued element.
// The vacated slot is zeroed so the stack retains no reference to it.
func (s *Stack[T]) Dequeue() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}

	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// Enqueue pushes one element on top, growing storage if full.
func (s *Stack[T]) Enqueue(v T) {
	if len(s.items) == cap(s.items) {
		s.grow(len(s.items) + 1)
	}
	s.items = append(s.items, v)
}

// EnqueueMany pushes the elements in argument order. Storage for the whole
// batch is reserved up front.
func (s *Stack[T]) EnqueueMany(vals ...T) {
	if need := len(s.items) + len(vals); need > cap(s.items) {
		s.grow(need)
	}
	s.items = append(s.items, vals...)
}

// EnqueueSeq pushes the elements of seq in iteration order.
func (s *Stack[T]) EnqueueSeq(seq iter.Seq[T]) {
	for v := range seq {
		s.Enqueue(v)
	}
}

// Clear removes all elements, zeroing their slots. When keepCapacity is
// false the backing slice is released as well.
func (s *Stack[T]) Clear(keepCapacity bool) {
	if !keepCapacity {
		s.items = nil
		return
	}

	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}

// Reserve ensures the stack can hold at least n elements without another
// reallocation. Returns ErrNegativeCapacity for n < 0.
func (s *Stack[T]) Reserve(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCapacity, "reserve %d", n)
	}
	if n > cap(s.items) {
		s.grow(n)
	}
	return nil
}

// grow reallocates the backing slice to hold at least minCap elements.
func (s *Stack[T]) grow(minCap int) {
	fresh := make([]T, len(s.items), nextCapacity(cap(s.items), minCap))
	copy(fresh, s.items)
	s.items = fresh
}
