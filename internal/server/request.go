package server

import (
	"github.com/indigo-web/h1pipe/classify"
	"github.com/indigo-web/h1pipe/http/method"
	"github.com/indigo-web/h1pipe/http/proto"
	"github.com/indigo-web/h1pipe/http1"
	"github.com/indigo-web/h1pipe/kv"
)

// Request is the collected head of a single request. All the strings are copies, so they
// stay valid after the source releases the bytes they were parsed from.
type Request struct {
	Method       method.Method
	CustomMethod string
	Target       string
	Path         string
	Query        string
	Proto        proto.Proto
	PathEncoded  bool
	Headers      *kv.Storage
	Kind         classify.Kind
	Remote       string
}

func newRequest(headersPrealloc int) Request {
	return Request{
		Headers: kv.NewPrealloc(headersPrealloc),
	}
}

// MethodName returns the method as it was received.
func (r *Request) MethodName() string {
	if r.Method == method.Custom {
		return r.CustomMethod
	}

	return r.Method.String()
}

// Clone returns a copy of the request, which can be retained after the callback returns.
func (r *Request) Clone() *Request {
	clone := *r
	clone.Headers = r.Headers.Clone()

	return &clone
}

func (r *Request) reset(line http1.StartLine) {
	r.Method = line.Method
	r.CustomMethod = string(line.CustomMethod)
	r.Target = string(line.Target)
	r.Path = string(line.Path)
	r.Query = string(line.Query)
	r.Proto = line.Proto
	r.PathEncoded = line.PathEncoded
	r.Kind = classify.Classify(line.Method, line.Path)
	r.Headers.Clear()
}
