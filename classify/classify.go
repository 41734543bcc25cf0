// Package classify maps a request's start line to one of the few request kinds an
// application recognizes.
package classify

import (
	"bytes"

	"github.com/indigo-web/h1pipe/http/method"
)

type Kind uint8

const (
	NotRecognized Kind = iota
	PlainText
	JSON
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "plaintext"
	case JSON:
		return "json"
	default:
		return "not recognized"
	}
}

// Paths are matched in order against the raw (still percent-encoded) request path.
var Paths = []struct {
	Prefix []byte
	Kind   Kind
}{
	{[]byte("/plaintext"), PlainText},
	{[]byte("/json"), JSON},
}

// Classify returns the kind of GET request the path prefix belongs to. Matching is
// case-sensitive and happens on raw bytes, so encoded paths are never recognized.
func Classify(m method.Method, path []byte) Kind {
	if m != method.GET {
		return NotRecognized
	}

	for _, p := range Paths {
		if bytes.HasPrefix(path, p.Prefix) {
			return p.Kind
		}
	}

	return NotRecognized
}
