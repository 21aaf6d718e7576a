package files

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// StartCache runs the expiration loop of c in its own goroutine and returns
// a func that stops it and waits for the goroutine to exit.
//
// A new ttlcache reports itself stopped until Start runs, so a Stop issued
// before the goroutine is scheduled is a no-op. The returned func keeps
// stopping until the loop has actually returned.
func StartCache[K comparable, V any](c *ttlcache.Cache[K, V]) (stop func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Start()
	}()

	return func() {
		for {
			c.Stop()
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
			}
		}
	}
}
