package buffer

import "github.com/indigo-web/h1pipe/sequence"

// Buffer is a bounded scratch space used to glue together lines that happen to be split
// between multiple chunks. Contiguous lines never touch it.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Gather returns the bytes of the sequence as a single slice. If the sequence is stored
// contiguously, the slice refers to its memory directly. Otherwise, the bytes are copied
// into the buffer, overriding whatever was returned by the previous call. False is returned
// if the sequence doesn't fit into the limit.
func (b *Buffer) Gather(seq sequence.Sequence) (data []byte, ok bool) {
	if seq.IsSingleSegment() {
		return seq.First(), true
	}

	b.Clear()
	for chunk := range seq.Chunks() {
		if !b.Append(chunk) {
			return nil, false
		}
	}

	return b.memory, true
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
