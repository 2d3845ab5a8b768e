// Package queue provides a generic queue contract and several in-memory
// implementations of it: a growable ring-buffer FIFO, a LIFO stack, a
// GC-friendly chunked FIFO, and a mutex-synchronized decorator.
package queue

import (
	"iter"

	"github.com/pkg/errors"
)

// ErrNegativeCapacity is returned by Reserve when the requested capacity is
// negative. Negative requests are rejected rather than clamped so that caller
// bugs surface immediately.
var ErrNegativeCapacity = errors.New("queue: negative capacity requested")

// Queue is the capability contract any sequential-storage type must satisfy
// to be usable as a queue. Dequeue order (FIFO, LIFO, or any other
// deterministic policy) is a documented property of each concrete type, not
// of the contract; Peek always previews what the next Dequeue would return
// absent intervening mutation.
//
// Implementations are not required to be safe for concurrent use. Wrap one
// with NewSynchronized when shared across goroutines.
type Queue[T any] interface {
	// Len returns the number of stored elements. O(1).
	Len() int

	// IsEmpty reports whether Len() == 0. O(1).
	IsEmpty() bool

	// Cap returns the number of elements storable without reallocation. O(1).
	Cap() int

	// IsFull reports whether Len() == Cap(). O(1).
	IsFull() bool

	// Peek returns the element the next Dequeue would remove, without
	// removing it. Returns (zero, false) when the queue is empty. O(1).
	Peek() (T, bool)

	// Dequeue removes and returns the front element in the type's documented
	// order. Returns (zero, false) when the queue is empty. Amortized O(1).
	Dequeue() (T, bool)

	// Enqueue stores one element, growing storage if needed. Amortized O(1).
	Enqueue(v T)

	// EnqueueMany stores the elements in argument order, equivalent to
	// sequential Enqueue calls. Storage is reserved up front, so growth is
	// amortized across the whole batch. O(k) for k elements plus one copy.
	EnqueueMany(vals ...T)

	// EnqueueSeq stores the elements of seq in iteration order, equivalent
	// to sequential Enqueue calls. The sequence is consumed exactly once.
	EnqueueSeq(seq iter.Seq[T])

	// Clear removes all elements and releases their slots. When keepCapacity
	// is false, storage is also released back to the type's minimal baseline.
	// O(n) worst case.
	Clear(keepCapacity bool)

	// Reserve ensures Cap() >= n so that enqueues up to n total elements do
	// not reallocate. Returns ErrNegativeCapacity for n < 0 and leaves the
	// queue unchanged. O(n) worst case (copy on reallocation).
	Reserve(n int) error
}

// Interface compliance checks.
var (
	_ Queue[int] = (*Ring[int])(nil)
	_ Queue[int] = (*Stack[int])(nil)
	_ Queue[int] = (*Chunked[int])(nil)
	_ Queue[int] = (*Synchronized[int])(nil)
)

// Drain returns a single-use sequence that dequeues from q until it is empty
// or the caller stops iterating. Breaking early leaves the remaining elements
// in the queue. Elements are yielded in q's documented dequeue order.
func Drain[T any](q Queue[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := q.Dequeue()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
