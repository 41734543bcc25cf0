package dummy

import (
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a net.Conn that on every read-operation returns the next of the chunks it was
// initialised with. After the last chunk it either starts over or, if set to shoot once,
// reports io.EOF. Written data is journaled.
type Conn struct {
	data    [][]byte
	pending []byte
	written []byte
	pointer int
	closed  bool
	once    bool
	nop     bool
}

func NewConn(data ...[]byte) *Conn {
	return &Conn{
		data: data,
	}
}

// Read copies the next chunk into b. A chunk larger than b is handed out in pieces, so
// chunk boundaries are never crossed within a single read.
func (c *Conn) Read(b []byte) (n int, err error) {
	if c.closed {
		return 0, io.EOF
	}

	if len(c.pending) == 0 {
		if c.pointer >= len(c.data) {
			if c.once || len(c.data) == 0 {
				c.closed = true
				return 0, io.EOF
			}

			c.pointer = 0
		}

		c.pending = c.data[c.pointer]
		c.pointer++
	}

	n = copy(b, c.pending)
	c.pending = c.pending[n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if !c.nop {
		c.written = append(c.written, b...)
	}

	return len(b), nil
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	return string(c.written)
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return Addr{}
}

func (c *Conn) RemoteAddr() net.Addr {
	return Addr{}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// Once makes the connection report io.EOF after the last chunk instead of looping.
func (c *Conn) Once() *Conn {
	c.once = true
	return c
}

// Nop disables the journaling of written data.
func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}

// Addr is the address reported by Conn from both sides.
type Addr struct{}

func (Addr) Network() string {
	return "dummy"
}

func (Addr) String() string {
	return "dummy"
}
