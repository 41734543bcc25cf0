package http1

import (
	"github.com/indigo-web/h1pipe/sequence"
)

// Driver advances the state of a single connection through the heads of its requests. It
// performs no I/O and never blocks: every call is a transformation of the buffer and the
// state it holds. A Driver must not be shared between connections.
type Driver[H Handler, T Tokenizer[H]] struct {
	tokenizer T
	handler   H
	state     State
}

func NewDriver[H Handler, T Tokenizer[H]](tokenizer T, handler H) *Driver[H, T] {
	return &Driver[H, T]{
		tokenizer: tokenizer,
		handler:   handler,
		state:     StartLine,
	}
}

// State returns the current parsing state.
func (d *Driver[H, T]) State() State {
	return d.state
}

// Reset brings the driver back to the StartLine state, e.g. after the host has consumed
// a request's body on its own.
func (d *Driver[H, T]) Reset() {
	d.state = StartLine
}

// Drive advances the state machine as far as buf allows. The returned rest is buf with
// all the consumed bytes sliced off and examined marks how far the buffer has been looked
// at, so the source knows whether it can wait for more data without re-delivering the same
// bytes. It always holds: rest.Start() <= examined <= buf.End().
//
// ok=false with nil error means buf is empty and isCompleted is set while no request is in
// flight, so the connection must be closed gracefully. Any non-nil error is fatal.
func (d *Driver[H, T]) Drive(buf sequence.Sequence, isCompleted bool) (
	ok bool, rest sequence.Sequence, examined sequence.Position, err error,
) {
	examined = buf.End()

	if buf.IsEmpty() {
		if isCompleted && d.state == Headers {
			return false, buf, examined, newError(PrematureEnd, ErrUnexpectedEOF)
		}

		return !isCompleted, buf, examined, nil
	}

	var consumed sequence.Position
	state := d.state

	if state == StartLine {
		var parsed bool
		consumed, examined, parsed, err = d.tokenizer.ParseRequestLine(d.handler, buf)
		if err != nil {
			return false, buf, examined, newError(Malformed, err)
		}

		if parsed {
			state = Headers
		}

		buf = buf.Slice(consumed)
	}

	if state == Headers {
		var completed bool
		reader := sequence.NewReader(buf)
		completed, err = d.tokenizer.ParseHeaders(d.handler, &reader)
		if err != nil {
			d.state = state
			return false, buf.Slice(reader.Position()), buf.End(), newError(Malformed, err)
		}

		consumed = reader.Position()
		if completed {
			examined = consumed
			state = Body
		} else {
			examined = buf.End()
		}

		buf = buf.Slice(consumed)
	}

	d.state = state

	if state != Body && isCompleted {
		return false, buf, examined, newError(PrematureEnd, ErrUnexpectedEOF)
	}

	return true, buf, examined, nil
}

// Handle parses all the requests available in buf, one after another. It stops as soon as
// the buffer is exhausted or holds only an incomplete request. The returned consumed and
// examined positions are meant to be passed back to the source.
//
// ok=false with nil error means the source was completed and there's nothing left to parse.
func (d *Driver[H, T]) Handle(buf sequence.Sequence, isCompleted bool) (
	ok bool, consumed, examined sequence.Position, err error,
) {
	for {
		ok, buf, examined, err = d.Drive(buf, isCompleted)
		if !ok {
			return false, buf.Start(), examined, err
		}

		if d.state == Body {
			d.state = StartLine

			if !buf.IsEmpty() {
				continue
			}
		}

		return true, buf.Start(), examined, nil
	}
}
