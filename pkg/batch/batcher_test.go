package batch

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/huynhanx03/go-queue/pkg/queue"
)

// captureConsumer records every batch it receives and can be primed to fail.
type captureConsumer struct {
	batches [][]int
	err     error
}

func (c *captureConsumer) Consume(batch []int) error {
	c.batches = append(c.batches, batch)
	return c.err
}

func TestBatcherFlushesAtSize(t *testing.T) {
	t.Parallel()

	cons := &captureConsumer{}
	b := New[int](nil, cons, Config{FlushSize: 3})

	for i := 1; i <= 7; i++ {
		b.Push(i)
	}

	require.Len(t, cons.batches, 2)
	require.Equal(t, []int{1, 2, 3}, cons.batches[0])
	require.Equal(t, []int{4, 5, 6}, cons.batches[1])
	require.Equal(t, 1, b.Len(), "tail item stays buffered")
}

func TestBatcherFlushDeliversTail(t *testing.T) {
	t.Parallel()

	cons := &captureConsumer{}
	b := New[int](nil, cons, Config{FlushSize: 4})

	for i := 1; i <= 6; i++ {
		b.Push(i)
	}
	require.NoError(t, b.Flush())

	require.Len(t, cons.batches, 2)
	require.Equal(t, []int{1, 2, 3, 4}, cons.batches[0])
	require.Equal(t, []int{5, 6}, cons.batches[1])
	require.Equal(t, 0, b.Len())
}

func TestBatcherFlushEmpty(t *testing.T) {
	t.Parallel()

	cons := &captureConsumer{}
	b := New[int](nil, cons, Config{FlushSize: 4})

	require.NoError(t, b.Flush())
	require.Empty(t, cons.batches, "no empty batch is delivered")
}

func TestBatcherFlushPropagatesError(t *testing.T) {
	t.Parallel()

	sink := errors.New("sink unavailable")
	cons := &captureConsumer{err: sink}
	b := New[int](nil, cons, Config{FlushSize: 10})

	b.Push(1)
	b.Push(2)

	err := b.Flush()
	require.ErrorIs(t, err, sink)
	require.Contains(t, err.Error(), "consume batch of 2")
}

func TestBatcherPushLogsConsumeError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	cons := &captureConsumer{err: errors.New("boom")}
	b := New[int](nil, cons, Config{FlushSize: 2}, WithLogger[int](zap.New(core)))

	b.Push(1)
	require.Equal(t, 0, logs.Len())
	b.Push(2) // triggers the failing flush

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "batch consume failed", entry.Message)
	require.Equal(t, int64(2), entry.ContextMap()["batch_size"])
}

func TestBatcherDefaultFlushSize(t *testing.T) {
	t.Parallel()

	cons := &captureConsumer{}
	b := New[int](nil, cons, Config{})

	for i := 0; i < defaultFlushSize; i++ {
		b.Push(i)
	}

	require.Len(t, cons.batches, 1)
	require.Len(t, cons.batches[0], defaultFlushSize)
}

func TestBatcherOrderFollowsQueue(t *testing.T) {
	t.Parallel()

	// A LIFO queue flips the batch order; the Batcher only drains in the
	// wrapped queue's documented order.
	cons := &captureConsumer{}
	b := New[int](queue.NewStack[int](0), cons, Config{FlushSize: 3})

	b.Push(1)
	b.Push(2)
	b.Push(3)

	require.Len(t, cons.batches, 1)
	require.Equal(t, []int{3, 2, 1}, cons.batches[0])
}

func TestBatcherConsumerOwnsBatch(t *testing.T) {
	t.Parallel()

	cons := &captureConsumer{}
	b := New[int](nil, cons, Config{FlushSize: 2})

	b.Push(1)
	b.Push(2)
	b.Push(3)
	b.Push(4)

	// Earlier batches are untouched by later flushes.
	require.Equal(t, []int{1, 2}, cons.batches[0])
	require.Equal(t, []int{3, 4}, cons.batches[1])
}
