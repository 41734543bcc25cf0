// Package tokenizer implements the default HTTP/1.x request line and header line scanner.
package tokenizer

import (
	"bytes"

	"github.com/indigo-web/h1pipe/config"
	"github.com/indigo-web/h1pipe/http/method"
	"github.com/indigo-web/h1pipe/http/proto"
	"github.com/indigo-web/h1pipe/http/status"
	"github.com/indigo-web/h1pipe/http1"
	"github.com/indigo-web/h1pipe/internal/buffer"
	"github.com/indigo-web/h1pipe/sequence"
)

var _ http1.Tokenizer[http1.Handler] = new(Tokenizer[http1.Handler])

// Tokenizer scans request lines and header lines. Lines are handed to the handler without
// copying, unless they're split between multiple chunks. Both LF and CRLF line terminators
// are accepted.
//
// The tokenizer keeps per-request counters for the limits, so it must not be shared
// between connections.
type Tokenizer[H http1.Handler] struct {
	cfg           *config.Config
	scratch       buffer.Buffer
	headersNumber int
	headersSize   int
}

func New[H http1.Handler](cfg *config.Config) *Tokenizer[H] {
	initial, maximal := cfg.ScratchSize()

	return &Tokenizer[H]{
		cfg:     cfg,
		scratch: buffer.New(initial, maximal),
	}
}

func (t *Tokenizer[H]) ParseRequestLine(h H, buf sequence.Sequence) (
	consumed, examined sequence.Position, ok bool, err error,
) {
	maxLength := t.cfg.URI.RequestLineSize.Maximal

	lf, found := buf.IndexByte('\n')
	if !found {
		if buf.Len() > maxLength {
			return buf.Start(), buf.End(), false, status.ErrTooLongRequestLine
		}

		return buf.Start(), buf.End(), false, nil
	}

	lineSeq := buf.Between(buf.Start(), lf)
	if lineSeq.Len() > maxLength {
		return buf.Start(), buf.End(), false, status.ErrTooLongRequestLine
	}

	line, fits := t.scratch.Gather(lineSeq)
	if !fits {
		return buf.Start(), buf.End(), false, status.ErrTooLongRequestLine
	}

	startLine, err := parseRequestLine(stripCR(line))
	if err != nil {
		return buf.Start(), buf.End(), false, err
	}

	t.headersNumber, t.headersSize = 0, 0
	h.OnStartLine(startLine)
	consumed = buf.Seek(lf, 1)

	return consumed, consumed, true, nil
}

func (t *Tokenizer[H]) ParseHeaders(h H, r *sequence.Reader) (ok bool, err error) {
	headersCfg := t.cfg.Headers

	for {
		rest := r.Remaining()
		if rest.IsEmpty() {
			return false, nil
		}

		lf, found := rest.IndexByte('\n')
		if !found {
			if t.headersSize+rest.Len() > headersCfg.Space.Maximal {
				return false, status.ErrHeaderFieldsTooLarge
			}

			return false, nil
		}

		lineSeq := rest.Between(rest.Start(), lf)
		if t.headersSize += lineSeq.Len() + 1; t.headersSize > headersCfg.Space.Maximal {
			return false, status.ErrHeaderFieldsTooLarge
		}

		line, fits := t.scratch.Gather(lineSeq)
		if !fits {
			return false, status.ErrHeaderFieldsTooLarge
		}

		line = stripCR(line)
		if len(line) == 0 {
			r.AdvanceTo(rest.Seek(lf, 1))
			h.OnHeadersComplete()

			return true, nil
		}

		name, value, err := splitHeader(line)
		if err != nil {
			return false, err
		}

		if t.headersNumber++; t.headersNumber > headersCfg.Number.Maximal {
			return false, status.ErrTooManyHeaders
		}

		h.OnHeader(name, value)
		r.AdvanceTo(rest.Seek(lf, 1))
	}
}

// parseRequestLine splits the line (without its terminator) into method, target and version.
// A line without the version is considered to be an HTTP/0.9 simple request.
func parseRequestLine(line []byte) (startLine http1.StartLine, err error) {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return startLine, status.ErrBadRequest
	}

	rawMethod := line[:sp]
	startLine.Method = method.Parse(rawMethod)
	if startLine.Method == method.Unknown {
		if !isToken(rawMethod) {
			return startLine, status.ErrBadMethod
		}

		startLine.Method = method.Custom
		startLine.CustomMethod = rawMethod
	}

	target, version := line[sp+1:], []byte(nil)
	if sp = bytes.IndexByte(target, ' '); sp != -1 {
		target, version = target[:sp], target[sp+1:]
	}

	if err = validateTarget(target); err != nil {
		return startLine, err
	}

	startLine.Target = target
	startLine.Path = target
	if q := bytes.IndexByte(target, '?'); q != -1 {
		startLine.Path, startLine.Query = target[:q], target[q:]
	}

	if len(startLine.Path) == 0 {
		return startLine, status.ErrBadTarget
	}

	startLine.PathEncoded = bytes.IndexByte(startLine.Path, '%') != -1

	if version == nil {
		startLine.Proto = proto.HTTP09
	} else if bytes.IndexByte(version, ' ') != -1 {
		return startLine, status.ErrBadRequest
	} else if startLine.Proto = proto.FromBytes(version); startLine.Proto == proto.Unknown {
		return startLine, status.ErrHTTPVersionNotSupported
	}

	return startLine, nil
}

func validateTarget(target []byte) error {
	if len(target) == 0 {
		return status.ErrBadTarget
	}

	for _, c := range target {
		// fragments are never sent by clients, so simply reject such requests.
		if isProhibitedChar(c) || c == '#' {
			return status.ErrBadTarget
		}
	}

	return nil
}

func splitHeader(line []byte) (name, value []byte, err error) {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return nil, nil, status.ErrBadHeader
	}

	// whitespaces between the name and the colon (as well as obsolete line folding) are
	// rejected by the token check
	name = line[:colon]
	if !isToken(name) {
		return nil, nil, status.ErrBadHeader
	}

	value = trimOWS(line[colon+1:])
	for _, c := range value {
		if !isFieldValueChar(c) {
			return nil, nil, status.ErrBadHeader
		}
	}

	return name, value, nil
}
