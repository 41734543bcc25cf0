package http1

import (
	"github.com/indigo-web/h1pipe/http/method"
	"github.com/indigo-web/h1pipe/http/proto"
	"github.com/indigo-web/h1pipe/sequence"
)

// StartLine is the parsed request line. All the byte fields refer to the memory of the
// buffer being parsed (or to a scratch space, if the line was split between chunks), so
// they are valid only until OnStartLine returns.
type StartLine struct {
	Method method.Method
	Proto  proto.Proto
	// Target is the whole request target, as it was received.
	Target []byte
	// Path is Target up to the question mark.
	Path []byte
	// Query is Target starting at the question mark, inclusively. Empty if there's none.
	Query []byte
	// CustomMethod is the method token as-is, if Method is method.Custom.
	CustomMethod []byte
	// PathEncoded reports whether Path contains percent-encoded sequences. They're never
	// decoded by the parser.
	PathEncoded bool
}

type RequestLineHandler interface {
	OnStartLine(line StartLine)
}

// HeadersHandler receives header fields one by one. Names and values are valid only until
// the call returns.
type HeadersHandler interface {
	OnHeader(name, value []byte)
	OnHeadersComplete()
}

type Handler interface {
	RequestLineHandler
	HeadersHandler
}

// Tokenizer extracts structured units from the beginning of a buffer. Being generic over
// the handler, its implementations are called without any dynamic dispatch.
//
// Both methods report incomplete input by returning false with no error. Any returned
// error is considered fatal.
type Tokenizer[H Handler] interface {
	// ParseRequestLine parses a single request line at the start of buf. On success, consumed
	// points right after the line terminator. Otherwise, consumed equals buf.Start() and
	// examined tells how far the buffer was scanned.
	ParseRequestLine(h H, buf sequence.Sequence) (consumed, examined sequence.Position, ok bool, err error)
	// ParseHeaders parses header lines until the empty line terminating them. The reader's
	// position is moved right after the last completely parsed line, no matter whether
	// the headers section is complete.
	ParseHeaders(h H, r *sequence.Reader) (ok bool, err error)
}
