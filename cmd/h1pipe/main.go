package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/indigo-web/h1pipe"
	"github.com/indigo-web/h1pipe/config"
	"github.com/indigo-web/h1pipe/internal/dump"
	"github.com/indigo-web/h1pipe/internal/server"
)

const usage = `usage: h1pipe <command> [flags]

commands:
  replay [-chunk N] [-trace] FILE|-   parse a captured stream, N bytes per read
  listen [-addr host:port] [-trace]   parse requests of every accepted connection
`

var errUsage = errors.New("bad usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}

		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	logger := log.New(stderr, "h1pipe: ", log.LstdFlags)

	switch args[0] {
	case "replay":
		return replay(args[1:], stdin, stdout, logger)
	case "listen":
		return listen(args[1:], stdout, logger)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return errUsage
	}
}

func replay(args []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	chunk := fs.Int("chunk", config.Default().NET.ReadBufferSize, "bytes per read")
	trace := fs.Bool("trace", false, "log every parsed request")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 || *chunk <= 0 {
		return errUsage
	}

	input, name := stdin, "stdin"
	if path := fs.Arg(0); path != "-" {
		file, err := os.Open(path)
		if err != nil {
			logger.Printf("open: %s", err)
			return err
		}

		defer file.Close()
		input, name = file, path
	}

	cfg := config.Default()
	cfg.NET.ReadBufferSize = *chunk
	cfg.Log.TraceRequests = *trace

	srv := server.New(cfg, logger, dumpRequests(stdout), dumpErrors(stdout))

	return srv.ServeReader(input, name)
}

func listen(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("listen", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	addr := fs.String("addr", ":8080", "address to listen on")
	trace := fs.Bool("trace", false, "log every parsed request")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}

	cfg := config.Default()
	cfg.Log.TraceRequests = *trace

	// connections are served concurrently, so the lines must not interleave
	out := &lockedWriter{w: stdout}
	app := h1pipe.New(*addr).
		Tune(cfg).
		Logger(logger).
		OnRequest(dumpRequests(out)).
		OnError(dumpErrors(out))

	app.NotifyOnStart(func() {
		logger.Printf("listening on %s", *addr)
	}).NotifyOnStop(func() {
		logger.Printf("stopped")
	})

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		app.Stop()
	}()

	if err := app.Serve(); err != nil {
		logger.Printf("serve: %s", err)
		return err
	}

	return nil
}

func dumpRequests(w io.Writer) server.OnRequest {
	return func(request *server.Request) {
		_ = dump.Request(w, request)
	}
}

func dumpErrors(w io.Writer) server.OnError {
	return func(remote string, err error) {
		_ = dump.Error(w, remote, err)
	}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(b)
}
