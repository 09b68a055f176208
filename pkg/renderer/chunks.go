package renderer

// WorkChunk is a contiguous range of row-major pixel indices, i = row*width + col
type WorkChunk struct {
	Index int // Position in launch order
	From  int // First pixel index
	To    int // One past the last pixel index
}

// Len returns the number of pixels in the chunk
func (c WorkChunk) Len() int {
	return c.To - c.From
}

// NewWorkChunks partitions [0, width*height) into n contiguous chunks.
// Boundaries fall on multiples of width*height/n and the last chunk absorbs the remainder.
// n is clamped to [1, width*height] so no chunk is empty.
func NewWorkChunks(width, height, n int) []WorkChunk {
	total := width * height
	if total <= 0 {
		return nil
	}
	n = max(1, min(n, total))

	size := total / n
	chunks := make([]WorkChunk, n)
	for i := range chunks {
		chunks[i] = WorkChunk{Index: i, From: i * size, To: (i + 1) * size}
	}
	chunks[n-1].To = total

	return chunks
}
