package events

import (
	"math"
	"sync"
	"time"

	"hdrbar/internal/header"
)

// RateController limits how often continuous notifications are passed on.
// Resizing arrives on every pointer motion and spends tokens from a bucket
// refilled at limit per second. Every other kind is always allowed so that
// observers never miss the start or the end of a gesture.
type RateController struct {
	limit      int
	tokens     float64
	lastRefill time.Time
	dropped    int
	now        func() time.Time
	mutex      sync.Mutex
}

// NewRateController creates a new rate controller allowing limit continuous
// notifications per second
func NewRateController(limit int) *RateController {
	if limit <= 0 {
		limit = 30
	}

	rc := &RateController{
		limit: limit,
		now:   time.Now,
	}
	rc.tokens = float64(limit)
	rc.lastRefill = rc.now()
	return rc
}

func continuous(kind header.EventKind) bool {
	return kind == header.Resizing
}

// Allow reports whether ev may be passed on, spending a token for
// continuous kinds
func (rc *RateController) Allow(ev header.Event) bool {
	if !continuous(ev.Kind) {
		return true
	}

	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	rc.refillTokens()
	if rc.tokens >= 1 {
		rc.tokens--
		return true
	}
	rc.dropped++
	return false
}

// refillTokens adds tokens for the time elapsed since the last refill
func (rc *RateController) refillTokens() {
	now := rc.now()
	elapsed := now.Sub(rc.lastRefill).Seconds()
	rc.lastRefill = now

	rc.tokens = math.Min(rc.tokens+elapsed*float64(rc.limit), float64(rc.limit))
}

// Dropped returns the number of notifications refused so far
func (rc *RateController) Dropped() int {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	return rc.dropped
}

// Throttle wraps sub so that it only sees the records rc allows
func Throttle(rc *RateController, sub Subscriber) Subscriber {
	return func(rec Record) {
		if rc.Allow(rec.Event) {
			sub(rec)
		}
	}
}
