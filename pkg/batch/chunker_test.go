package batch

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		size  int
		want  [][]string
	}{
		{
			name:  "empty input yields zero chunks",
			items: []string{},
			size:  5,
			want:  nil,
		},
		{
			name:  "single partial chunk",
			items: []string{"A", "B"},
			size:  5,
			want:  [][]string{{"A", "B"}},
		},
		{
			name:  "exact multiple",
			items: []string{"A", "B", "C", "D"},
			size:  2,
			want:  [][]string{{"A", "B"}, {"C", "D"}},
		},
		{
			name:  "last chunk shorter",
			items: []string{"A", "B", "C", "D", "E", "F"},
			size:  5,
			want:  [][]string{{"A", "B", "C", "D", "E"}, {"F"}},
		},
		{
			name:  "size one",
			items: []string{"A", "B", "C"},
			size:  1,
			want:  [][]string{{"A"}, {"B"}, {"C"}},
		},
		{
			name:  "size larger than input",
			items: []string{"A"},
			size:  100,
			want:  [][]string{{"A"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Chunk(tt.items, tt.size)
			if err != nil {
				t.Fatalf("Chunk() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunk_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := Chunk([]string{"A"}, size)
		if !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("Chunk(size=%d) error = %v, want ErrInvalidChunkSize", size, err)
		}
	}
}

// Concatenating the chunks must reproduce the input exactly, and every chunk
// except possibly the last must have exactly the requested length.
func TestChunk_Completeness(t *testing.T) {
	inputs := [][]int{
		{},
		{1},
		{1, 2, 3},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
	}

	for _, items := range inputs {
		for size := 1; size <= len(items)+1; size++ {
			chunks, err := Chunk(items, size)
			if err != nil {
				t.Fatalf("Chunk(len=%d, size=%d) error: %v", len(items), size, err)
			}

			wantCount := (len(items) + size - 1) / size
			if len(chunks) != wantCount {
				t.Errorf("Chunk(len=%d, size=%d) produced %d chunks, want %d",
					len(items), size, len(chunks), wantCount)
			}

			var flat []int
			for i, chunk := range chunks {
				if i < len(chunks)-1 && len(chunk) != size {
					t.Errorf("Chunk(len=%d, size=%d): chunk %d has length %d, want %d",
						len(items), size, i, len(chunk), size)
				}
				flat = append(flat, chunk...)
			}

			if len(flat) != len(items) {
				t.Fatalf("Chunk(len=%d, size=%d): concat length %d", len(items), size, len(flat))
			}
			for i := range items {
				if flat[i] != items[i] {
					t.Fatalf("Chunk(len=%d, size=%d): concat differs at %d", len(items), size, i)
				}
			}
		}
	}
}
