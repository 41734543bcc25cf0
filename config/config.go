package config

import (
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}

	URIRequestLineSize struct {
		Default, Maximal int
	}
)

type (
	URI struct {
		// RequestLineSize limits the length of the request line, including method and protocol.
		// Default is the initial capacity of the scratch space lines are glued in, when they
		// arrive split between multiple reads.
		RequestLineSize URIRequestLineSize
	}

	Headers struct {
		// Number limits how many header fields a single request may carry. Default value
		// is an initial size of a storage collecting them, Maximal is the limit.
		Number HeadersNumber
		// Space limits the amount of bytes occupied by the whole headers section of a
		// request, line terminators included.
		Space HeadersSpace
	}

	NET struct {
		// ReadBufferSize is a size of a single chunk read from the socket.
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, it'll be closed.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Log struct {
		// TraceRequests logs every parsed request.
		TraceRequests bool `test:"nullable"`
	}
)

// Config holds settings used across various parts of h1pipe, mainly restrictions, limitations
// and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	NET     NET
	Log     Log
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: URIRequestLineSize{
				Default: 2 * 1024,
				// allow at most 16kb of request line, which is effectively pretty much tolerant,
				// considering most web-entities limit it to 4-8kb.
				Maximal: 16 * 1024,
			},
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
			Space: HeadersSpace{
				Default: 1 * 1024,  // 1kb for headers must be fairly enough in most cases.
				Maximal: 16 * 1024, // However, there also might be extremely long cookies.
			},
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}

// ScratchSize returns the initial and the maximal size of a scratch buffer, sufficient
// to hold any line permitted by the config.
func (c *Config) ScratchSize() (initial, maximal int) {
	return c.URI.RequestLineSize.Default, max(c.URI.RequestLineSize.Maximal, c.Headers.Space.Maximal)
}
