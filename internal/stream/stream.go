// Package stream slices a fully materialized result set into bounded pages
// or progress-annotated chunks for progressive delivery. Both operations
// work on results that have already been computed in full; they only bound
// what is transmitted, never what is analyzed.
package stream

import "math"

const percentScale = 100

// Paginate returns the half-open page [page*size, page*size+size) of items.
// A page past the end yields an empty slice, not an error. Negative pages
// and sizes are treated as empty requests.
func Paginate[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return []T{}
	}

	start := page * size
	if start >= len(items) {
		return []T{}
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// Progress describes how far a chunked transmission has advanced.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Chunk is one piece of a chunked result with its progress annotation.
type Chunk[T any] struct {
	Items    []T      `json:"chunk"`
	Progress Progress `json:"progress"`
}

// Split cuts items into chunks of at most size elements, preserving order.
// The last chunk may be shorter. A non-positive size yields a single chunk
// holding everything; empty input yields no chunks.
func Split[T any](items []T, size int) []Chunk[T] {
	if len(items) == 0 {
		return nil
	}

	if size <= 0 {
		size = len(items)
	}

	total := len(items)
	chunks := make([]Chunk[T], 0, (total+size-1)/size)

	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}

		current := end

		chunks = append(chunks, Chunk[T]{
			Items: items[start:end],
			Progress: Progress{
				Current: current,
				Total:   total,
				Percent: int(math.Round(float64(current) / float64(total) * percentScale)),
			},
		})
	}

	return chunks
}
