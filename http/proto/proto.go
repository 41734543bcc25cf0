package proto

import "github.com/indigo-web/utils/uf"

type Proto uint8

const (
	Unknown Proto = 0
	// HTTP09 is reported for version-less request lines (the so-called simple requests).
	HTTP09 Proto = 1 << iota
	HTTP10
	HTTP11

	HTTP1 = HTTP09 | HTTP10 | HTTP11
)

func (p Proto) String() string {
	lut := [...]string{HTTP09: "HTTP/0.9", HTTP10: "HTTP/1.0", HTTP11: "HTTP/1.1"}
	if int(p) >= len(lut) || len(lut[p]) == 0 {
		return "Unknown"
	}

	return lut[p]
}

const (
	protoTokenLength   = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

var majorMinorVersionLUT = [10][10]Proto{
	0: {9: HTTP09},
	1: {0: HTTP10, 1: HTTP11},
}

// FromBytes parses the version token of a request line. Only HTTP/1.x (and HTTP/0.9)
// are recognized, anything else results in Unknown.
func FromBytes(raw []byte) Proto {
	if len(raw) != protoTokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme ||
		raw[majorVersionOffset+1] != '.' {
		return Unknown
	}

	return Parse(raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0')
}

func Parse(major, minor uint8) Proto {
	if major > 9 || minor > 9 {
		return Unknown
	}

	return majorMinorVersionLUT[major][minor]
}
