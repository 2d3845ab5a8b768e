package queue

import (
	"iter"

	"github.com/pkg/errors"
)

// Ring is a growable circular-buffer FIFO queue: elements dequeue in the
// order they were enqueued. The capacity is always zero or a power of two,
// which allows mask indexing on wraparound.
// It is NOT thread-safe.
type Ring[T any] struct {
	buf   []T // live elements occupy [head, head+count) mod cap
	head  int // index of the oldest element, next to dequeue
	count int // number of live elements
}

// NewRing creates a Ring with at least the given initial capacity, rounded
// up to a power of two. A capacity <= 0 creates an unallocated ring that
// grows on first enqueue.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		return &Ring[T]{}
	}
	return &Ring[T]{buf: make([]T, ceilPow2(capacity))}
}

// Len returns the number of stored elements.
func (r *Ring[T]) Len() int { return r.count }

// IsEmpty reports whether the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return r.count == 0 }

// Cap returns the number of elements storable without reallocation.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// IsFull reports whether the next Enqueue would grow the storage.
func (r *Ring[T]) IsFull() bool { return r.count == len(r.buf) }

// Peek returns the front element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	return r.buf[r.head], true
}

// Dequeue removes and returns the front element.
// The vacated slot is zeroed so the ring retains no reference to it.
func (r *Ring[T]) Dequeue() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}

	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = r.wrapIndex(r.head + 1)
	r.count--
	return v, true
}

// Enqueue appends one element to the back, growing storage if full.
func (r *Ring[T]) Enqueue(v T) {
	if r.count == len(r.buf) {
		r.grow(r.count + 1)
	}
	r.buf[r.wrapIndex(r.head+r.count)] = v
	r.count++
}

// EnqueueMany appends the elements in argument order. Storage for the whole
// batch is reserved up front, so at most one reallocation happens.
func (r *Ring[T]) EnqueueMany(vals ...T) {
	if need := r.count + len(vals); need > len(r.buf) {
		r.grow(need)
	}
	for _, v := range vals {
		r.Enqueue(v)
	}
}

// EnqueueSeq appends the elements of seq in iteration order. The stream
// length is unknown, so growth falls back to per-element doubling.
func (r *Ring[T]) EnqueueSeq(seq iter.Seq[T]) {
	for v := range seq {
		r.Enqueue(v)
	}
}

// Clear removes all elements, zeroing their slots. When keepCapacity is
// false the backing buffer is released as well.
func (r *Ring[T]) Clear(keepCapacity bool) {
	if !keepCapacity {
		r.buf = nil
		r.head, r.count = 0, 0
		return
	}

	var zero T
	for i := 0; i < r.count; i++ {
		r.buf[r.wrapIndex(r.head+i)] = zero
	}
	r.head, r.count = 0, 0
}

// Reserve ensures the ring can hold at least n elements without another
// reallocation. Returns ErrNegativeCapacity for n < 0.
func (r *Ring[T]) Reserve(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCapacity, "reserve %d", n)
	}
	if n > len(r.buf) {
		r.grow(n)
	}
	return nil
}

// wrapIndex returns the index wrapped within the buffer capacity.
func (r *Ring[T]) wrapIndex(idx int) int {
	return idx & (len(r.buf) - 1)
}

// grow reallocates the buffer to hold at least minCap elements and copies
// the live elements linearized to index 0, so no wraparound state carries
// across the reallocation.
func (r *Ring[T]) grow(minCap int) {
	newBuf := make([]T, nextCapacity(len(r.buf), minCap))

	if r.head+r.count <= len(r.buf) {
		copy(newBuf, r.buf[r.head:r.head+r.count])
	} else {
		n := copy(newBuf, r.buf[r.head:])
		copy(newBuf[n:], r.buf[:r.count-n])
	}

	r.buf = newBuf
	r.head = 0
}
