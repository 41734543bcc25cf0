package transport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/indigo-web/h1pipe/config"
	"github.com/indigo-web/h1pipe/http/status"
	"github.com/indigo-web/h1pipe/internal/pool"
	"github.com/indigo-web/h1pipe/internal/timer"
	"github.com/indigo-web/h1pipe/sequence"
)

// ReadResult is a view over all the bytes that are read but not consumed yet.
type ReadResult struct {
	Buffer sequence.Sequence
	// IsCompleted reports that the peer won't send any more bytes.
	IsCompleted bool
}

// freeChunks is how many released chunks are kept for reuse.
const freeChunks = 4

type deadliner interface {
	SetReadDeadline(t time.Time) error
}

type chunk struct {
	memory []byte
	lo, hi int
}

// Source turns a stream of reads into a sequence of retained chunks. Bytes stay valid until
// they're released by AdvanceTo, so a request head split between multiple reads needn't be
// copied anywhere.
//
// Source is not safe for concurrent use.
type Source struct {
	r         io.Reader
	deadline  deadliner
	timeout   time.Duration
	chunkSize int
	chunks    []chunk
	// free holds the memory of released chunks for reuse.
	free pool.ObjectPool[[]byte]
	// origin is the absolute index of the first retained byte.
	origin int64
	// needMore is set when everything retained was examined, so the next Read must wait
	// for fresh bytes.
	needMore  bool
	completed bool
}

// NewSource wraps the reader. If it supports read deadlines (as net.Conn does), every
// blocking read is limited by cfg.ReadTimeout.
func NewSource(r io.Reader, cfg config.NET) *Source {
	s := &Source{
		r:         r,
		timeout:   cfg.ReadTimeout,
		chunkSize: cfg.ReadBufferSize,
		free:      pool.NewObjectPool[[]byte](freeChunks),
		needMore:  true,
	}

	if d, ok := r.(deadliner); ok {
		s.deadline = d
	}

	return s
}

// Read returns every retained byte. If the previous AdvanceTo marked all of them as examined,
// Read blocks until at least one new byte arrives or the reader is exhausted.
func (s *Source) Read() (ReadResult, error) {
	if s.needMore && !s.completed {
		if err := s.fill(); err != nil {
			return ReadResult{Buffer: s.buffer()}, err
		}
	}

	s.needMore = false

	return ReadResult{
		Buffer:      s.buffer(),
		IsCompleted: s.completed,
	}, nil
}

// AdvanceTo releases all the bytes before consumed. Releasing the whole chunk makes its
// memory reusable, so no view obtained before the call may be used afterwards.
func (s *Source) AdvanceTo(consumed, examined sequence.Position) {
	end := s.origin + int64(s.buffered())
	if consumed.Index() < s.origin || examined.Index() > end || examined.Before(consumed) {
		panic(fmt.Errorf("transport: advancing to [%d, %d] out of [%d, %d]",
			consumed.Index(), examined.Index(), s.origin, end))
	}

	s.needMore = examined.Index() >= end
	s.release(int(consumed.Index() - s.origin))
}

// Buffered returns the number of retained bytes.
func (s *Source) Buffered() int {
	return s.buffered()
}

func (s *Source) buffered() (n int) {
	for _, c := range s.chunks {
		n += c.hi - c.lo
	}

	return n
}

func (s *Source) buffer() sequence.Sequence {
	segments := make([][]byte, len(s.chunks))
	for i, c := range s.chunks {
		segments[i] = c.memory[c.lo:c.hi]
	}

	return sequence.NewAt(s.origin, segments...)
}

func (s *Source) release(n int) {
	s.origin += int64(n)

	for len(s.chunks) > 0 && n > 0 {
		c := &s.chunks[0]
		size := c.hi - c.lo
		if n < size {
			c.lo += n
			return
		}

		n -= size

		if c.hi == cap(c.memory) {
			s.free.Release(c.memory)
			s.chunks = s.chunks[1:]
		} else {
			// the tail chunk can still be read into
			c.lo = c.hi
		}
	}
}

// fill reads at least one byte into the tail chunk, taking a new one if the tail is full.
func (s *Source) fill() error {
	if len(s.chunks) == 0 || s.chunks[len(s.chunks)-1].hi == cap(s.chunks[len(s.chunks)-1].memory) {
		s.chunks = append(s.chunks, chunk{memory: s.alloc()})
	}

	tail := &s.chunks[len(s.chunks)-1]

	for {
		if s.deadline != nil {
			err := s.deadline.SetReadDeadline(timer.After(s.timeout))
			switch {
			case errors.Is(err, os.ErrNoDeadline):
				// regular files and some pipes do implement the method, but can't serve it
				s.deadline = nil
			case err != nil:
				return fmt.Errorf("transport: set read deadline: %w", err)
			}
		}

		n, err := s.r.Read(tail.memory[tail.hi:cap(tail.memory)])
		tail.hi += n

		switch {
		case errors.Is(err, io.EOF):
			s.completed = true
			return nil
		case errors.Is(err, os.ErrDeadlineExceeded):
			return status.ErrRequestTimeout
		case err != nil:
			return fmt.Errorf("transport: read: %w", err)
		case n > 0:
			return nil
		}
	}
}

func (s *Source) alloc() []byte {
	if memory, ok := s.free.Acquire(); ok {
		return memory[:0]
	}

	return make([]byte, 0, s.chunkSize)
}
