package queue

import (
	"iter"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// chunkBytes is the target allocation size of a single chunk.
	chunkBytes = 1024
	// minChunkLen is the minimum number of elements per chunk.
	minChunkLen = 16
	// defaultWindowLen is the initial length of the chunk-pointer window.
	defaultWindowLen = 16
)

// chunk is a fixed-length slot array; live elements occupy [l, r).
// Dequeued slots are zeroed before a chunk is recycled through the pool.
type chunk[T any] struct {
	data []T
	l, r int
}

func newChunk[T any](length int) *chunk[T] {
	return &chunk[T]{data: make([]T, length)}
}

func (c *chunk[T]) len() int { return c.r - c.l }

func (c *chunk[T]) reset() { c.l, c.r = 0, 0 }

// Chunked is a FIFO queue over pooled fixed-length chunks. Compared to Ring
// it never copies elements on growth and releases consumed storage eagerly,
// which keeps large queues friendly to the garbage collector.
// It is NOT thread-safe.
type Chunked[T any] struct {
	// chunks[head:tail] is the allocated window; chunks[write] receives
	// enqueues, chunks beyond it are reserved spares.
	chunks []*chunk[T]
	head   int
	tail   int
	write  int

	size     int // number of live elements
	chunkLen int // elements per chunk, fixed at construction
	pool     sync.Pool
}

// NewChunked creates a Chunked queue able to hold at least minCapacity
// elements before allocating further chunks. The chunk length is derived
// from a per-chunk byte budget divided by the element size; zero-sized
// element types fall back to the maximum chunk length.
func NewChunked[T any](minCapacity int) *Chunked[T] {
	chunkLen := chunkBytes
	if size := unsafe.Sizeof(*new(T)); size > 0 {
		chunkLen = chunkBytes / int(size)
		if chunkLen < minChunkLen {
			chunkLen = minChunkLen
		}
	} else {
		zap.L().Warn("chunked queue created for a zero-sized element type",
			zap.Int("chunk_length", chunkLen))
	}

	q := &Chunked[T]{chunkLen: chunkLen}
	q.pool.New = func() any { return newChunk[T](chunkLen) }
	q.chunks = make([]*chunk[T], defaultWindowLen)
	q.extend(minCapacity)
	return q
}

// Len returns the number of stored elements.
func (q *Chunked[T]) Len() int { return q.size }

// IsEmpty reports whether the queue holds no elements.
func (q *Chunked[T]) IsEmpty() bool { return q.size == 0 }

// Cap returns the number of elements storable in the allocated chunks,
// excluding the consumed prefix of the head chunk.
func (q *Chunked[T]) Cap() int {
	return q.chunkLen*(q.tail-q.head) - q.chunks[q.head].l
}

// IsFull reports whether the next Enqueue would allocate a chunk.
func (q *Chunked[T]) IsFull() bool { return q.size == q.Cap() }

// Peek returns the front element without removing it.
func (q *Chunked[T]) Peek() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	c := q.chunks[q.head]
	return c.data[c.l], true
}

// Dequeue removes and returns the front element. Fully consumed chunks are
// recycled through the pool with their slots already zeroed.
func (q *Chunked[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	c := q.chunks[q.head]
	v := c.data[c.l]
	c.data[c.l] = zero
	c.l++
	q.size--

	if c.l == q.chunkLen {
		q.popChunk()
	}
	return v, true
}

// Enqueue appends one element, moving to the next chunk when the current
// write chunk is full.
func (q *Chunked[T]) Enqueue(v T) {
	c := q.chunks[q.write]
	if c.r == q.chunkLen {
		if q.write+1 == q.tail {
			q.extend(1)
		}
		q.write++
		c = q.chunks[q.write]
	}
	c.data[c.r] = v
	c.r++
	q.size++
}

// EnqueueMany appends the elements in argument order, extending the chunk
// window once up front for the whole batch.
func (q *Chunked[T]) EnqueueMany(vals ...T) {
	if free := q.Cap() - q.size; free < len(vals) {
		q.extend(len(vals) - free)
	}
	for _, v := range vals {
		q.Enqueue(v)
	}
}

// EnqueueSeq appends the elements of seq in iteration order.
func (q *Chunked[T]) EnqueueSeq(seq iter.Seq[T]) {
	for v := range seq {
		q.Enqueue(v)
	}
}

// Clear removes all elements, zeroing their slots. When keepCapacity is
// false the queue shrinks back to its single-chunk baseline.
func (q *Chunked[T]) Clear(keepCapacity bool) {
	var zero T
	for i := q.head; i <= q.write && q.size > 0; i++ {
		c := q.chunks[i]
		for j := c.l; j < c.r; j++ {
			c.data[j] = zero
		}
		q.size -= c.len()
		c.reset()
	}
	q.size = 0

	if keepCapacity {
		q.chunks[q.head].reset()
		q.write = q.head
		return
	}

	for i := q.head; i < q.tail; i++ {
		c := q.chunks[i]
		q.chunks[i] = nil
		c.reset()
		q.pool.Put(c)
	}
	q.head, q.tail, q.write = 0, 0, 0
	q.compact(-1)
	q.extend(1)
}

// Reserve ensures the queue can hold at least n elements without allocating
// another chunk. Returns ErrNegativeCapacity for n < 0.
func (q *Chunked[T]) Reserve(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCapacity, "reserve %d", n)
	}
	if c := q.Cap(); c < n {
		q.extend(n - c)
	}
	return nil
}

// extend appends enough pooled chunks to the window to store n more
// elements, reallocating or compacting the window array when the tail
// would overrun it.
func (q *Chunked[T]) extend(n int) {
	if n <= 0 {
		n = 1
	}
	needed := (n + q.chunkLen - 1) / q.chunkLen

	if q.tail+needed >= len(q.chunks) {
		q.compact(needed)
	}
	for i := 0; i < needed; i++ {
		q.chunks[q.tail] = q.pool.Get().(*chunk[T])
		q.tail++
	}
}

// compact moves the live window to index 0, doubling the window array while
// more than half of it would be in use. A negative need shrinks the array
// back to its default length.
func (q *Chunked[T]) compact(need int) {
	n := len(q.chunks)
	if need < 0 {
		n = defaultWindowLen
		need = 0
	}
	used := q.tail - q.head
	for used+need > n/2 {
		n *= 2
	}

	if n != len(q.chunks) {
		fresh := make([]*chunk[T], n)
		copy(fresh, q.chunks[q.head:q.tail])
		q.chunks = fresh
	} else if q.head > 0 {
		copy(q.chunks[:used], q.chunks[q.head:q.tail])
		for i := used; i < q.tail; i++ {
			q.chunks[i] = nil
		}
	}
	q.write -= q.head
	q.tail = used
	q.head = 0
}

// popChunk recycles the fully consumed head chunk and keeps the window
// non-empty so the write cursor always points at an allocated chunk.
func (q *Chunked[T]) popChunk() {
	c := q.chunks[q.head]
	q.chunks[q.head] = nil
	q.head++
	if q.write < q.head {
		q.write = q.head
	}
	if q.head == q.tail {
		q.extend(1)
	}

	c.reset()
	q.pool.Put(c)
}
