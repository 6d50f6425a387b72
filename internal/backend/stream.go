package backend

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// StreamURL builds the per-user order feed endpoint.
func StreamURL(base, phone string) string {
	return base + "/ws/orders/user_" + url.PathEscape(phone) + "/"
}

// Stream is a WebSocket consumer of the platform's order events. Delivery
// is at least once with no ordering promise; the tracking engine is built
// to tolerate that, and to tolerate the stream dying outright.
type Stream struct {
	url       string
	log       *slog.Logger
	reconnect bool

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

func NewStream(url string, reconnect bool, log *slog.Logger) *Stream {
	return &Stream{url: url, reconnect: reconnect, log: log}
}

// Run dials the feed and hands each text frame to onMessage until ctx is
// cancelled. With reconnect enabled it re-dials with capped backoff;
// otherwise the first broken connection ends the stream for good and the
// caller falls back to polling alone.
func (s *Stream) Run(ctx context.Context, onMessage func([]byte)) error {
	backoff := time.Second
	for {
		err := s.readOnce(ctx, onMessage)
		if ctx.Err() != nil {
			return nil
		}
		if !s.reconnect {
			return err
		}

		s.log.Warn("backend: stream disconnected, retrying", "err", err, "backoff", backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (s *Stream) readOnce(ctx context.Context, onMessage func([]byte)) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	// Unblock ReadMessage when the context goes away.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		onMessage(msg)
	}
}

// Close shuts the current connection down. Idempotent.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.conn != nil {
		s.conn.Close()
	}
}
