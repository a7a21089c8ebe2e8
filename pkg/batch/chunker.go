package batch

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkSize is returned when a chunk size below 1 is configured.
var ErrInvalidChunkSize = errors.New("invalid configuration: chunk size must be >= 1")

// Chunk splits items into contiguous, order-preserving groups of at most
// size elements. The last chunk may be shorter; an empty input yields zero
// chunks. Concatenating the output reproduces the input exactly.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidChunkSize, size)
	}

	if len(items) == 0 {
		return nil, nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}
