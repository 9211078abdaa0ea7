package events

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"hdrbar/internal/header"
)

// Middleware sits between the header and the final handler. It may veto an
// event by returning header.Veto without calling next.
type Middleware interface {
	HandleHeaderEvent(ev header.Event, next header.Handler) header.Verdict
}

// MiddlewareFunc adapts a function to Middleware
type MiddlewareFunc func(ev header.Event, next header.Handler) header.Verdict

// HandleHeaderEvent implements Middleware
func (f MiddlewareFunc) HandleHeaderEvent(ev header.Event, next header.Handler) header.Verdict {
	return f(ev, next)
}

// Subscriber observes every notification after its verdict is known
type Subscriber func(rec Record)

// Record is one delivered header notification
type Record struct {
	Event   header.Event
	Verdict header.Verdict
	At      time.Time
}

// Dispatcher routes header notifications through a middleware chain to a
// final handler, records them and fans them out to subscribers. It
// implements header.Handler.
type Dispatcher struct {
	handler     header.Handler
	middleware  []Middleware
	subscribers map[string]Subscriber
	history     *History
	logger      *slog.Logger
	now         func() time.Time
	mutex       sync.RWMutex
}

// DispatcherConfig configures a Dispatcher
type DispatcherConfig struct {
	HistorySize int
	Logger      *slog.Logger
}

// DefaultDispatcherConfig returns the default dispatcher configuration
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		HistorySize: 64,
	}
}

// NewDispatcher creates a new dispatcher delivering to handler
func NewDispatcher(handler header.Handler, config DispatcherConfig) *Dispatcher {
	if config.HistorySize <= 0 {
		config.HistorySize = DefaultDispatcherConfig().HistorySize
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Dispatcher{
		handler:     handler,
		middleware:  make([]Middleware, 0),
		subscribers: make(map[string]Subscriber),
		history:     NewHistory(config.HistorySize),
		logger:      logger,
		now:         time.Now,
	}
}

// SetHandler replaces the final handler
func (d *Dispatcher) SetHandler(handler header.Handler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.handler = handler
}

// Use appends middleware to the chain. Middleware runs in the order added.
func (d *Dispatcher) Use(mw Middleware) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.middleware = append(d.middleware, mw)
}

// Subscribe registers a subscriber under id, replacing any previous one
func (d *Dispatcher) Subscribe(id string, sub Subscriber) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.subscribers[id] = sub
}

// Unsubscribe removes the subscriber registered under id
func (d *Dispatcher) Unsubscribe(id string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.subscribers, id)
}

// History returns the notification history
func (d *Dispatcher) History() *History {
	return d.history
}

// HandleHeaderEvent implements header.Handler
func (d *Dispatcher) HandleHeaderEvent(ev header.Event) header.Verdict {
	d.mutex.RLock()
	middleware := make([]Middleware, len(d.middleware))
	copy(middleware, d.middleware)
	final := d.handler
	subscribers := make([]Subscriber, 0, len(d.subscribers))
	for _, sub := range d.subscribers {
		subscribers = append(subscribers, sub)
	}
	d.mutex.RUnlock()

	var chain header.Handler = header.HandlerFunc(func(ev header.Event) header.Verdict {
		if final == nil {
			return header.Unhandled
		}
		return final.HandleHeaderEvent(ev)
	})

	// Apply middleware in reverse order
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := chain
		chain = header.HandlerFunc(func(ev header.Event) header.Verdict {
			return mw.HandleHeaderEvent(ev, next)
		})
	}

	verdict := chain.HandleHeaderEvent(ev)

	rec := Record{Event: ev, Verdict: verdict, At: d.now()}
	d.history.Add(rec)
	for _, sub := range subscribers {
		sub(rec)
	}

	return verdict
}

var _ header.Handler = (*Dispatcher)(nil)
