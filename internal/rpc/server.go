package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/gorilla/websocket"

	"hdrbar/internal/events"
)

// Server accepts websocket connections and serves the header service on
// each of them. Header notifications are pushed to every connection.
type Server struct {
	service  *Service
	upgrader websocket.Upgrader
	logger   *slog.Logger

	conns map[*jrpc2.Server]struct{}
	mutex sync.Mutex
	wg    sync.WaitGroup

	pushes    chan events.Record
	stop      chan struct{}
	startPush sync.Once
	stopPush  sync.Once
}

// pushQueueSize bounds the notifications waiting to be pushed. Resizing
// is throttled upstream so a full queue means a stuck client.
const pushQueueSize = 256

// NewServer creates a new websocket server for service
func NewServer(service *Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		service: service,
		upgrader: websocket.Upgrader{
			// the server only listens on addresses chosen by the user
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
		conns:  make(map[*jrpc2.Server]struct{}),
		pushes: make(chan events.Record, pushQueueSize),
		stop:   make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and serves JSON-RPC until the peer leaves
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	srv := jrpc2.NewServer(s.service.Assigner(), &jrpc2.ServerOptions{
		AllowPush: true,
	}).Start(NewStream(conn))

	s.mutex.Lock()
	s.conns[srv] = struct{}{}
	s.mutex.Unlock()
	s.wg.Add(1)

	s.logger.Info("rpc client connected", "remote", r.RemoteAddr)

	go func() {
		defer s.wg.Done()
		err := srv.Wait()

		s.mutex.Lock()
		delete(s.conns, srv)
		s.mutex.Unlock()

		s.logger.Info("rpc client disconnected", "remote", r.RemoteAddr, "error", err)
	}()
}

// Connections returns the number of connected clients
func (s *Server) Connections() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.conns)
}

// Broadcast pushes a header notification to every connected client
func (s *Server) Broadcast(ctx context.Context, rec events.Record) {
	s.mutex.Lock()
	conns := make([]*jrpc2.Server, 0, len(s.conns))
	for srv := range s.conns {
		conns = append(conns, srv)
	}
	s.mutex.Unlock()

	payload := EventRecord(rec)
	for _, srv := range conns {
		if err := srv.Notify(ctx, NotifyEvent, payload); err != nil {
			s.logger.Debug("push failed", "error", err)
		}
	}
}

// Subscriber returns a dispatcher subscriber that broadcasts every record.
// Records are queued and pushed in order by a single goroutine so the
// header never waits for the network. Records that find the queue full
// are dropped.
func (s *Server) Subscriber() events.Subscriber {
	s.startPush.Do(func() { go s.pushLoop() })

	return func(rec events.Record) {
		select {
		case <-s.stop:
		case s.pushes <- rec:
		default:
			s.logger.Warn("push queue full, dropping notification", "kind", rec.Event.Kind.String())
		}
	}
}

func (s *Server) pushLoop() {
	for {
		select {
		case <-s.stop:
			return
		case rec := <-s.pushes:
			s.Broadcast(context.Background(), rec)
		}
	}
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then stops every connection
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/rpc", s)

	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
		s.stopAll()
	}()

	s.logger.Info("rpc server listening", "addr", ln.Addr().String())
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) stopAll() {
	s.stopPush.Do(func() { close(s.stop) })

	s.mutex.Lock()
	conns := make([]*jrpc2.Server, 0, len(s.conns))
	for srv := range s.conns {
		conns = append(conns, srv)
	}
	s.mutex.Unlock()

	for _, srv := range conns {
		srv.Stop()
	}
	s.wg.Wait()
}
