// Package dump renders parsed requests and connection errors as JSON lines.
package dump

import (
	"io"

	"github.com/indigo-web/h1pipe/http/status"
	"github.com/indigo-web/h1pipe/http1"
	"github.com/indigo-web/h1pipe/internal/server"
	json "github.com/json-iterator/go"
)

// Request writes the request as a single-line JSON object, followed by a newline.
func Request(w io.Writer, request *server.Request) error {
	stream := json.ConfigDefault.BorrowStream(w)
	defer json.ConfigDefault.ReturnStream(stream)

	stream.WriteObjectStart()
	field(stream, "remote", request.Remote)
	stream.WriteMore()
	field(stream, "method", request.MethodName())
	stream.WriteMore()
	field(stream, "target", request.Target)
	stream.WriteMore()
	field(stream, "path", request.Path)
	stream.WriteMore()
	field(stream, "query", request.Query)
	stream.WriteMore()
	field(stream, "proto", request.Proto.String())
	stream.WriteMore()
	stream.WriteObjectField("encoded")
	stream.WriteBool(request.PathEncoded)
	stream.WriteMore()
	field(stream, "kind", request.Kind.String())
	stream.WriteMore()
	stream.WriteObjectField("headers")
	stream.WriteArrayStart()

	first := true
	for key, value := range request.Headers.Pairs() {
		if !first {
			stream.WriteMore()
		}

		first = false
		stream.WriteArrayStart()
		stream.WriteString(key)
		stream.WriteMore()
		stream.WriteString(value)
		stream.WriteArrayEnd()
	}

	stream.WriteArrayEnd()
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")

	return stream.Flush()
}

// Error writes the error that closed the connection. Parse errors additionally carry their
// kind and the status code a server would respond with.
func Error(w io.Writer, remote string, err error) error {
	stream := json.ConfigDefault.BorrowStream(w)
	defer json.ConfigDefault.ReturnStream(stream)

	stream.WriteObjectStart()
	field(stream, "remote", remote)
	stream.WriteMore()
	field(stream, "error", err.Error())

	if kind := http1.KindOf(err); kind != 0 {
		stream.WriteMore()
		field(stream, "kind", kind.String())
		stream.WriteMore()
		stream.WriteObjectField("code")
		stream.WriteUint16(uint16(status.CodeOf(err)))
	}

	stream.WriteObjectEnd()
	stream.WriteRaw("\n")

	return stream.Flush()
}

func field(stream *json.Stream, name, value string) {
	stream.WriteObjectField(name)
	stream.WriteString(value)
}
