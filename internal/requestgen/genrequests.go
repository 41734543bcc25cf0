package requestgen

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/h1pipe/kv"
)

// PlaintextRequest and JSONRequest are the heads TechEmpower's load generator sends.
const (
	PlaintextRequest = "GET /plaintext HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Accept: text/plain,text/html;q=0.9,application/xhtml+xml;q=0.9,application/xml;q=0.8,*/*;q=0.7\r\n" +
		"Connection: keep-alive\r\n" +
		"\r\n"
	JSONRequest = "GET /json HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Accept: Accept:application/json,text/html;q=0.9,application/xhtml+xml;q=0.9,application/xml;q=0.8,*/*;q=0.7\r\n" +
		"Connection: keep-alive\r\n" +
		"\r\n"
)

// Pipelined returns n copies of the request glued back-to-back.
func Pipelined(request string, n int) []byte {
	return bytes.Repeat([]byte(request), n)
}

// Headers returns n headers, the last one of which is always Host.
func Headers(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Add("Host", "localhost")
}

// RandomHeaders returns n headers with random names and values.
func RandomHeaders(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n; i++ {
		hdrs.Add(uniuri.NewLen(16), uniuri.New())
	}

	return hdrs
}

func HeadersBlock(hdrs *kv.Storage) (buff []byte) {
	for key, value := range hdrs.Pairs() {
		buff = append(buff, key+": "+value+"\r\n"...)
	}

	return buff
}

func Generate(uri string, hdrs *kv.Storage) (request []byte) {
	request = append(request, "GET /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// Split cuts the data into parts of at most n bytes each.
func Split(data []byte, n int) (parts [][]byte) {
	for i := 0; i < len(data); i += n {
		end := min(i+n, len(data))
		parts = append(parts, data[i:end])
	}

	return parts
}
