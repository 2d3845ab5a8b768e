package batch

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items.
	// The batch slice is owned by the Consumer and is never reused.
	// Returns an error if processing fails.
	Consume(batch []T) error
}

// Config holds configuration for the Batcher.
type Config struct {
	// FlushSize is the number of buffered items that triggers a flush
	// to the Consumer.
	FlushSize int
}
