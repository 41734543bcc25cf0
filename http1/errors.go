package http1

import (
	"errors"

	"github.com/indigo-web/h1pipe/http/status"
)

type ErrorKind uint8

const (
	// Malformed means the tokenizer met structurally invalid bytes.
	Malformed ErrorKind = iota + 1
	// PrematureEnd means the source was completed in the middle of a request's head.
	PrematureEnd
)

func (k ErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed request"
	case PrematureEnd:
		return "premature end of data"
	default:
		return "unknown error"
	}
}

var ErrUnexpectedEOF = status.NewError(status.BadRequest, "unexpected end of data")

// Error is returned by the Driver on every fatal failure. Both kinds terminate the connection,
// they're distinguished solely for reporting.
type Error struct {
	Kind ErrorKind
	Err  error
}

func newError(kind ErrorKind, err error) error {
	return &Error{
		Kind: kind,
		Err:  err,
	}
}

func (e *Error) Error() string {
	return "http1: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the error, or zero if err isn't produced by the Driver.
func KindOf(err error) ErrorKind {
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}

	return 0
}
