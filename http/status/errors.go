package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrCloseConnection = NewError(CloseConnection, "actively closing the connection")
	ErrRequestTimeout  = NewError(RequestTimeout, "request timeout")

	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrBadMethod               = NewError(BadRequest, "invalid request method token")
	ErrBadTarget               = NewError(BadRequest, "invalid request target")
	ErrBadHeader               = NewError(BadRequest, "malformed header field")
	ErrTooLongRequestLine      = NewError(RequestURITooLong, "request line is too long")
	ErrHeaderFieldsTooLarge    = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders          = NewError(RequestHeaderFieldsTooLarge, "too many headers")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)

// CodeOf extracts the status code carried by the error. Errors not being HTTPError are
// reported as BadRequest.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return BadRequest
}
