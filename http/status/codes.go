package status

type Code uint16

// Response codes a connection host might pick when turning a parse failure into a
// protocol-appropriate reply. As registered with IANA.
const (
	BadRequest                  Code = 400 // RFC 9110, 15.5.1
	RequestTimeout              Code = 408 // RFC 9110, 15.5.9
	RequestURITooLong           Code = 414 // RFC 9110, 15.5.15
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5
	NotImplemented              Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported     Code = 505 // RFC 9110, 15.6.6

	// CloseConnection isn't a real status code. It signals that the connection must be
	// closed without writing anything.
	CloseConnection Code = 1
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) string {
	switch code {
	case BadRequest:
		return "Bad Request"
	case RequestTimeout:
		return "Request Timeout"
	case RequestURITooLong:
		return "Request URI Too Long"
	case RequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case NotImplemented:
		return "Not Implemented"
	case HTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}
