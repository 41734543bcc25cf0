// Package h1pipe accepts HTTP/1.x connections and parses pipelined request heads off them,
// reporting every request to the callbacks. It never writes responses.
package h1pipe

import (
	"net"

	"github.com/indigo-web/h1pipe/config"
	"github.com/indigo-web/h1pipe/internal/server"
	"github.com/indigo-web/h1pipe/internal/strutil"
	"github.com/indigo-web/h1pipe/transport"
)

type (
	Request   = server.Request
	Logger    = server.Logger
	OnRequest = server.OnRequest
	OnError   = server.OnError
)

// App binds the listeners and spawns a connection host for every accepted connection.
type App struct {
	addrs     []string
	cfg       *config.Config
	hooks     hooks
	logger    Logger
	onRequest OnRequest
	onError   OnError
	bound     []*transport.TCP
	sv        *transport.Supervisor
}

// New returns a new App instance listening on the address. Addresses starting with a colon
// are bound to all the interfaces.
func New(addr string) *App {
	return &App{
		addrs: []string{strutil.NormalizeAddress(addr)},
		cfg:   config.Default(),
		sv:    transport.NewSupervisor(),
	}
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Listen adds one more address to listen on.
func (a *App) Listen(addr string) *App {
	a.addrs = append(a.addrs, strutil.NormalizeAddress(addr))
	return a
}

// Logger replaces the default log.Default() logger.
func (a *App) Logger(logger Logger) *App {
	a.logger = logger
	return a
}

// OnRequest sets the callback, which is called for every parsed request. It may be called
// from multiple goroutines simultaneously.
func (a *App) OnRequest(cb OnRequest) *App {
	a.onRequest = cb
	return a
}

// OnError sets the callback, which is called whenever a connection is closed because of
// an error.
func (a *App) OnError(cb OnError) *App {
	a.onError = cb
	return a
}

// NotifyOnStart calls the callback at the moment, when all the listeners are bound.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the listeners are down and all
// the connections are served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addrs returns the addresses the listeners are actually bound to. Makes sense only after
// the start notification.
func (a *App) Addrs() []net.Addr {
	addrs := make([]net.Addr, len(a.bound))
	for i, tcp := range a.bound {
		addrs[i] = tcp.Addr()
	}

	return addrs
}

// Serve binds all the listeners and blocks until Stop is called or any of them fails.
func (a *App) Serve() error {
	srv := server.New(a.cfg, a.logger, a.onRequest, a.onError)
	cb := func(conn net.Conn) {
		_ = srv.ServeConn(conn)
	}

	for _, addr := range a.addrs {
		tcp := transport.NewTCP()
		if err := a.sv.Add(addr, tcp, cb); err != nil {
			return err
		}

		a.bound = append(a.bound, tcp)
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.sv.Run(a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops accepting new connections and waits until all the connected ones are closed.
func (a *App) Stop() {
	a.sv.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
