package sequence

// Reader is a cursor walking a Sequence forward. Its Position is what has been consumed
// so far.
type Reader struct {
	seq Sequence
	pos Position
}

func NewReader(seq Sequence) Reader {
	return Reader{
		seq: seq,
		pos: seq.Start(),
	}
}

// Position returns the current position of the reader.
func (r *Reader) Position() Position {
	return r.pos
}

// Remaining returns the unread part of the sequence.
func (r *Reader) Remaining() Sequence {
	return r.seq.Slice(r.pos)
}

// Consumed returns the number of bytes the reader has moved over.
func (r *Reader) Consumed() int {
	return int(r.pos.index - r.seq.start.index)
}

// End reports whether there's nothing left to read.
func (r *Reader) End() bool {
	return r.pos.index == r.seq.end.index
}

// Advance moves the reader n bytes forward.
func (r *Reader) Advance(n int) {
	r.pos = r.seq.Seek(r.pos, n)
}

// AdvanceTo moves the reader to p, which must not precede the current position.
func (r *Reader) AdvanceTo(p Position) {
	if p.index < r.pos.index || p.index > r.seq.end.index {
		panic(outOfRange{})
	}

	r.pos = p
}
