// Package timer provides a coarse clock for I/O deadlines. Reading it is a single atomic
// load, which is much cheaper than time.Now() on a hot read loop.
package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is how often the clock is updated. Deadlines are thereby imprecise by up to
// this value, which is fine for timeouts measured in seconds.
const Resolution = 500 * time.Millisecond

var millis = new(atomic.Int64)

func init() {
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}

// Now returns the time as of the last update.
func Now() time.Time {
	return time.UnixMilli(millis.Load())
}

// After returns the moment d after Now.
func After(d time.Duration) time.Time {
	return Now().Add(d)
}
