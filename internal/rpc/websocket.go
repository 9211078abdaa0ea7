package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Stream carries JSON-RPC messages over a websocket. It implements the
// jrpc2 channel.Channel interface, one message per text frame.
type Stream struct {
	conn  *websocket.Conn
	wmu   sync.Mutex
	close sync.Once
}

// NewStream creates a new stream on an established websocket
func NewStream(conn *websocket.Conn) *Stream {
	return &Stream{conn: conn}
}

// Send implements the channel.Sender interface
func (s *Stream) Send(data []byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Recv implements the channel.Receiver interface. A closed websocket is
// reported as io.EOF.
func (s *Stream) Recv() ([]byte, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
			errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return data, nil
}

// Close sends a close frame and closes the connection
func (s *Stream) Close() error {
	var err error
	s.close.Do(func() {
		s.wmu.Lock()
		deadline := time.Now().Add(time.Second)
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		s.wmu.Unlock()
		err = s.conn.Close()
	})
	return err
}

// Dial connects to a websocket endpoint, retrying with exponential backoff
// until attempts are exhausted or ctx is done.
func Dial(ctx context.Context, rawURL string, attempts int) (*Stream, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if attempts <= 0 {
		attempts = 1
	}

	backoff := NewExponentialBackoff()
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(backoff.Delay()):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff.Increment()
		}

		dialer := websocket.Dialer{HandshakeTimeout: backoff.Timeout()}
		conn, _, err := dialer.DialContext(ctx, u.String(), nil)
		if err == nil {
			return NewStream(conn), nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to connect to %s: %w", u, lastErr)
}

// ExponentialBackoff computes retry delays
type ExponentialBackoff struct {
	baseDelay  time.Duration
	maxDelay   time.Duration
	multiplier float64
	retryCount int
}

// NewExponentialBackoff creates a new exponential backoff
func NewExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		baseDelay:  100 * time.Millisecond,
		maxDelay:   5 * time.Second,
		multiplier: 2.0,
	}
}

// Delay returns the current delay
func (eb *ExponentialBackoff) Delay() time.Duration {
	delay := float64(eb.baseDelay)
	for i := 0; i < eb.retryCount; i++ {
		delay *= eb.multiplier
	}

	if time.Duration(delay) > eb.maxDelay {
		return eb.maxDelay
	}
	return time.Duration(delay)
}

// Timeout returns the handshake timeout for the next attempt
func (eb *ExponentialBackoff) Timeout() time.Duration {
	timeout := 10 * eb.Delay()
	if timeout < time.Second {
		timeout = time.Second
	}
	return timeout
}

// Increment increases the retry count
func (eb *ExponentialBackoff) Increment() {
	eb.retryCount++
}

// Reset resets the backoff state
func (eb *ExponentialBackoff) Reset() {
	eb.retryCount = 0
}
