package method

import "github.com/indigo-web/utils/uf"

//go:generate stringer -type=Method
type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
	// Custom is an extension method. Its name is carried separately, as the enum obviously
	// can't hold it.
	Custom

	// Count equals the greatest value of the enum.
	Count = iota - 1
)

// List contains all the well-known HTTP methods, ordered by their value.
var List = []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH}

// Parse recognizes well-known method tokens. Method tokens are case-sensitive, so "get" is
// reported as Unknown.
func Parse(token []byte) Method {
	if len(token) < len("GET") {
		return Unknown
	}

	var candidate Method

	switch token[0] {
	case 'G':
		candidate = GET
	case 'H':
		candidate = HEAD
	case 'P':
		switch token[1] {
		case 'O':
			candidate = POST
		case 'U':
			candidate = PUT
		case 'A':
			candidate = PATCH
		}
	case 'D':
		candidate = DELETE
	case 'C':
		candidate = CONNECT
	case 'O':
		candidate = OPTIONS
	case 'T':
		candidate = TRACE
	}

	if candidate == Unknown || uf.B2S(token) != candidate.String() {
		return Unknown
	}

	return candidate
}
