// Package server hosts connections: it moves bytes from a source through the driver and
// delivers every parsed request head to the callbacks.
package server

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/indigo-web/h1pipe/config"
	"github.com/indigo-web/h1pipe/http/status"
	"github.com/indigo-web/h1pipe/http1"
	"github.com/indigo-web/h1pipe/http1/tokenizer"
	"github.com/indigo-web/h1pipe/sequence"
	"github.com/indigo-web/h1pipe/transport"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

type (
	// OnRequest is called for every request which head was parsed successfully. The request
	// must not be retained after the call, use Request.Clone instead.
	OnRequest func(request *Request)
	// OnError is called at most once per connection, right before it's closed.
	OnError func(remote string, err error)
)

// Source is where the bytes come from. See transport.Source.
type Source interface {
	Read() (transport.ReadResult, error)
	AdvanceTo(consumed, examined sequence.Position)
}

type Server struct {
	cfg       *config.Config
	logger    Logger
	onRequest OnRequest
	onError   OnError
}

// New returns a new server. Nil callbacks are ignored, nil logger falls back to log.Default().
func New(cfg *config.Config, logger Logger, onRequest OnRequest, onError OnError) *Server {
	if logger == nil {
		logger = log.Default()
	}

	if onRequest == nil {
		onRequest = func(*Request) {}
	}

	if onError == nil {
		onError = func(string, error) {}
	}

	return &Server{
		cfg:       cfg,
		logger:    logger,
		onRequest: onRequest,
		onError:   onError,
	}
}

// ServeConn serves the connection until it's closed by the peer or fails.
func (s *Server) ServeConn(conn net.Conn) error {
	return s.Serve(transport.NewSource(conn, s.cfg.NET), s.NewConn(conn.RemoteAddr().String()))
}

// ServeReader serves the reader as if it was a connection.
func (s *Server) ServeReader(r io.Reader, remote string) error {
	return s.Serve(transport.NewSource(r, s.cfg.NET), s.NewConn(remote))
}

// Serve runs the read-parse-advance loop. Nil is returned if the source was exhausted
// between requests.
func (s *Server) Serve(src Source, conn *Conn) error {
	for {
		result, err := src.Read()
		if err != nil {
			return s.fail(conn, err)
		}

		ok, consumed, examined, err := conn.driver.Handle(result.Buffer, result.IsCompleted)
		if err != nil {
			return s.fail(conn, err)
		}

		if !ok {
			return nil
		}

		src.AdvanceTo(consumed, examined)
	}
}

func (s *Server) fail(conn *Conn, err error) error {
	switch {
	case errors.Is(err, status.ErrRequestTimeout):
		s.logger.Printf("%s: closing idle connection", conn.remote)
	case http1.KindOf(err) == http1.PrematureEnd:
		s.logger.Printf("%s: connection closed in the middle of a request", conn.remote)
	default:
		s.logger.Printf("%s: %s (%d)", conn.remote, err, status.CodeOf(err))
	}

	s.onError(conn.remote, err)

	return err
}

// Conn is the per-connection state: the driver with its tokenizer and the request being
// collected. It's the handler the driver reports to.
type Conn struct {
	server  *Server
	remote  string
	request Request
	driver  *http1.Driver[*Conn, *tokenizer.Tokenizer[*Conn]]
}

var _ http1.Handler = new(Conn)

func (s *Server) NewConn(remote string) *Conn {
	conn := &Conn{
		server:  s,
		remote:  remote,
		request: newRequest(s.cfg.Headers.Number.Default),
	}
	conn.request.Remote = remote
	conn.driver = http1.NewDriver(tokenizer.New[*Conn](s.cfg), conn)

	return conn
}

func (c *Conn) OnStartLine(line http1.StartLine) {
	c.request.reset(line)
}

func (c *Conn) OnHeader(name, value []byte) {
	c.request.Headers.Add(string(name), string(value))
}

func (c *Conn) OnHeadersComplete() {
	if c.server.cfg.Log.TraceRequests {
		c.server.logger.Printf(
			"%s: %s %s %s (%s)",
			c.remote, c.request.MethodName(), c.request.Target, c.request.Proto, c.request.Kind,
		)
	}

	c.server.onRequest(&c.request)
}
