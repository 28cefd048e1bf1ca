package middleware

import (
	"strconv"
	"sync"
	"time"
)

// In-memory fixed-window counters, used when Redis is not configured.

type windowCounter struct {
	start  time.Time
	window time.Duration
	count  int
}

var (
	rlMu     sync.Mutex
	rlCounts = make(map[string]*windowCounter)
)

// localAllow applies a fixed-window limit for the given identifier without
// Redis. Keys are scoped by limiter name so limiters sharing a window keep
// independent counters. Expired entries are swept whenever a new key is
// inserted, so the map only holds clients seen within their window.
func localAllow(name, ident string, maxRequests int, window time.Duration) bool {
	key := name + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident

	rlMu.Lock()
	defer rlMu.Unlock()

	now := time.Now()
	wc, ok := rlCounts[key]
	if !ok || now.Sub(wc.start) > window {
		if !ok {
			sweepExpired(now)
		}
		rlCounts[key] = &windowCounter{start: now, window: window, count: 1}
		return true
	}

	wc.count++
	return wc.count <= maxRequests
}

// sweepExpired removes counters whose window has passed. Caller holds rlMu.
func sweepExpired(now time.Time) {
	for key, wc := range rlCounts {
		if now.Sub(wc.start) > wc.window {
			delete(rlCounts, key)
		}
	}
}
