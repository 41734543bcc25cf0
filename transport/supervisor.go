package transport

import (
	"net"
	"sync"

	"github.com/indigo-web/h1pipe/config"
)

// Transport is a listener accepting connections and passing them to the callback.
type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close()
	Wait()
}

type boundTransport struct {
	Transport
	cb func(conn net.Conn)
}

// Supervisor runs multiple transports at once. As soon as any of them returns, all the
// others are stopped too.
type Supervisor struct {
	transports []boundTransport
	stopReq    chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	doneOnce   sync.Once
}

func NewSupervisor() *Supervisor {
	return &Supervisor{
		stopReq: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Add binds the transport to the address. On failure, every transport added before is closed
// and the supervisor is considered finished, so Stop returns immediately.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	if err := transport.Bind(addr); err != nil {
		for _, t := range s.transports {
			t.Close()
		}

		s.transports = nil
		s.finish()

		return err
	}

	s.transports = append(s.transports, boundTransport{
		Transport: transport,
		cb:        cb,
	})

	return nil
}

// Run blocks until either Stop is called or any of the transports returns. The error of the
// first returned transport is passed through.
func (s *Supervisor) Run(cfg config.NET) (err error) {
	defer s.finish()

	if len(s.transports) == 0 {
		return nil
	}

	errs := make(chan error, len(s.transports))
	for _, t := range s.transports {
		go func(t boundTransport) {
			errs <- t.Listen(cfg, t.cb)
		}(t)
	}

	running := len(s.transports)

	select {
	case err = <-errs:
		running--
	case <-s.stopReq:
	}

	for _, t := range s.transports {
		t.Stop()
	}

	for _, t := range s.transports {
		t.Wait()
		t.Close()
	}

	for ; running > 0; running-- {
		<-errs
	}

	return err
}

// Stop interrupts all the transports and waits until Run returns. If Add has failed, there's
// nothing to wait for. Otherwise Run must be eventually started.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopReq)
	})

	<-s.done
}

func (s *Supervisor) finish() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
