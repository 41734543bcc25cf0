// Package sequence implements an immutable view over a logically contiguous stream of bytes
// that is physically stored in one or more chunks. Views never copy or mutate the chunks
// they refer to, so slicing a consumed prefix off is free.
package sequence

import (
	"bytes"
	"iter"
)

// Position is a forward-only cursor into a Sequence. Positions compare by their absolute
// index in the stream, so positions taken from different slices of the same stream remain
// comparable.
type Position struct {
	index int64
	// seg and off are always kept canonical: either off points at an existing byte of
	// segments[seg], or seg is past the last segment and off is zero.
	seg, off int
}

// Index returns the absolute offset of the position in the stream.
func (p Position) Index() int64 {
	return p.index
}

// Compare returns -1, 0 or +1 depending on whether p is before, at, or after o.
func (p Position) Compare(o Position) int {
	switch {
	case p.index < o.index:
		return -1
	case p.index > o.index:
		return 1
	default:
		return 0
	}
}

// Before reports whether p points strictly before o.
func (p Position) Before(o Position) bool {
	return p.index < o.index
}

type outOfRange struct{}

func (outOfRange) Error() string {
	return "sequence: position out of range"
}

// Sequence is a view over [start, end) of the stream.
type Sequence struct {
	segments   [][]byte
	start, end Position
}

// New returns a view over the segments, the first byte of which is considered to be
// the beginning of the stream.
func New(segments ...[]byte) Sequence {
	return NewAt(0, segments...)
}

// NewAt returns a view over the segments, the first byte of which has the absolute index
// origin. Sources use it to keep positions monotonic after releasing consumed chunks.
func NewAt(origin int64, segments ...[]byte) Sequence {
	var total int
	for _, segment := range segments {
		total += len(segment)
	}

	s := Sequence{segments: segments}
	seg, off := s.normalize(0, 0)
	s.start = Position{index: origin, seg: seg, off: off}
	s.end = Position{index: origin + int64(total), seg: len(segments)}

	return s
}

// Start returns the position of the first byte in the view.
func (s Sequence) Start() Position {
	return s.start
}

// End returns the position right after the last byte in the view.
func (s Sequence) End() Position {
	return s.end
}

// Len returns the number of bytes in the view.
func (s Sequence) Len() int {
	return int(s.end.index - s.start.index)
}

// IsEmpty reports whether the view holds no bytes.
func (s Sequence) IsEmpty() bool {
	return s.start.index == s.end.index
}

// Slice returns the view starting at from and ending where s ends.
func (s Sequence) Slice(from Position) Sequence {
	return s.Between(from, s.end)
}

// Between returns the view over [from, to). Both positions must belong to s.
func (s Sequence) Between(from, to Position) Sequence {
	if from.index < s.start.index || to.index > s.end.index || from.index > to.index {
		panic(outOfRange{})
	}

	return Sequence{
		segments: s.segments,
		start:    from,
		end:      to,
	}
}

// Seek returns the position n bytes after p.
func (s Sequence) Seek(p Position, n int) Position {
	if n < 0 || p.index < s.start.index || p.index+int64(n) > s.end.index {
		panic(outOfRange{})
	}

	seg, off := s.normalize(p.seg, p.off+n)

	return Position{
		index: p.index + int64(n),
		seg:   seg,
		off:   off,
	}
}

// IndexByte returns the position of the first occurrence of c in the view.
func (s Sequence) IndexByte(c byte) (pos Position, found bool) {
	s.walk(s.start, func(index int64, seg, off int, piece []byte) bool {
		if i := bytes.IndexByte(piece, c); i != -1 {
			pos = Position{index: index + int64(i), seg: seg, off: off + i}
			found = true
			return false
		}

		return true
	})

	return pos, found
}

// First returns the first contiguous piece of the view. It is empty only if the whole
// view is empty.
func (s Sequence) First() (first []byte) {
	s.walk(s.start, func(_ int64, _, _ int, piece []byte) bool {
		first = piece
		return false
	})

	return first
}

// IsSingleSegment reports whether all the bytes of the view are stored contiguously.
func (s Sequence) IsSingleSegment() bool {
	return len(s.First()) == s.Len()
}

// Chunks iterates over the contiguous pieces of the view. Empty pieces are skipped.
func (s Sequence) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		s.walk(s.start, func(_ int64, _, _ int, piece []byte) bool {
			return yield(piece)
		})
	}
}

// AppendTo appends all the bytes of the view to dst.
func (s Sequence) AppendTo(dst []byte) []byte {
	for chunk := range s.Chunks() {
		dst = append(dst, chunk...)
	}

	return dst
}

// Bytes returns a copy of the view. Must not be used on hot paths.
func (s Sequence) Bytes() []byte {
	return s.AppendTo(make([]byte, 0, s.Len()))
}

func (s Sequence) String() string {
	return string(s.Bytes())
}

// walk calls fn for every non-empty piece of the view starting at p, until fn returns false.
// index is the absolute index of the piece's first byte.
func (s Sequence) walk(p Position, fn func(index int64, seg, off int, piece []byte) bool) {
	index := p.index

	for seg, off := p.seg, p.off; seg < len(s.segments) && seg <= s.end.seg; seg, off = seg+1, 0 {
		piece := s.segments[seg]
		if seg == s.end.seg {
			piece = piece[:s.end.off]
		}

		piece = piece[off:]
		if len(piece) == 0 {
			continue
		}

		if !fn(index, seg, off, piece) {
			return
		}

		index += int64(len(piece))
	}
}

func (s Sequence) normalize(seg, off int) (int, int) {
	for seg < len(s.segments) && off >= len(s.segments[seg]) {
		off -= len(s.segments[seg])
		seg++
	}

	if seg >= len(s.segments) && off != 0 {
		panic(outOfRange{})
	}

	return seg, off
}
