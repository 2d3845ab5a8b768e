// Package batch collects items through a queue and flushes them to a
// Consumer in fixed-size batches.
package batch

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-queue/pkg/queue"
)

const defaultFlushSize = 512

// Option customizes a Batcher.
type Option[T any] func(*Batcher[T])

// WithLogger sets the logger used to report consume failures that surface
// inside Push. The default is a no-op logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(b *Batcher[T]) {
		b.logger = logger
	}
}

// Batcher buffers pushed items through a queue and hands them to the
// Consumer in batches of FlushSize, in the queue's dequeue order.
// It is NOT thread-safe; pass a synchronized queue and guard the Batcher
// externally when pushing from multiple goroutines.
type Batcher[T any] struct {
	q         queue.Queue[T]
	cons      Consumer[T]
	flushSize int
	logger    *zap.Logger
}

// New creates a Batcher flushing through q to cons.
// A nil q defaults to an unallocated FIFO ring.
func New[T any](q queue.Queue[T], cons Consumer[T], cfg Config, opts ...Option[T]) *Batcher[T] {
	if q == nil {
		q = queue.NewRing[T](0)
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}

	b := &Batcher[T]{
		q:         q,
		cons:      cons,
		flushSize: cfg.FlushSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Push adds an item to the batcher.
// It triggers a flush to the Consumer when the buffered count reaches the
// flush size. Push is fire-and-forget: consume errors cannot be returned
// here and are logged instead.
func (b *Batcher[T]) Push(item T) {
	b.q.Enqueue(item)
	if b.q.Len() >= b.flushSize {
		if err := b.flush(b.flushSize); err != nil {
			b.logger.Error("batch consume failed",
				zap.Int("batch_size", b.flushSize),
				zap.Error(err))
		}
	}
}

// Len returns the number of items buffered and not yet flushed.
func (b *Batcher[T]) Len() int { return b.q.Len() }

// Flush delivers all remaining buffered items to the Consumer as one final
// batch. Call it on shutdown so no pending items are lost.
func (b *Batcher[T]) Flush() error {
	if b.q.IsEmpty() {
		return nil
	}
	return b.flush(b.q.Len())
}

// flush dequeues up to n items into a fresh slice and hands it to the
// Consumer. A new slice is allocated per batch so the Consumer safely owns
// the data it receives.
func (b *Batcher[T]) flush(n int) error {
	batch := make([]T, 0, n)
	for len(batch) < n {
		v, ok := b.q.Dequeue()
		if !ok {
			break
		}
		batch = append(batch, v)
	}

	if err := b.cons.Consume(batch); err != nil {
		return errors.Wrapf(err, "consume batch of %d", len(batch))
	}
	return nil
}
