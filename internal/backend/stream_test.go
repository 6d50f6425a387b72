package backend

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStreamURL(t *testing.T) {
	got := StreamURL("ws://127.0.0.1:8001", "9000000001")
	want := "ws://127.0.0.1:8001/ws/orders/user_9000000001/"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStreamRunDeliversFramesAndStopsOnCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"order":{"order_id":"S"}}`))
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	s := NewStream(wsURL, false, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := make(chan []byte, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(b []byte) {
			select {
			case frames <- b:
			default:
			}
		})
	}()

	select {
	case raw := <-frames:
		if !strings.Contains(string(raw), "order_id") {
			t.Fatalf("unexpected frame: %s", raw)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// Teardown after Run is a no-op, repeatable.
	s.Close()
	s.Close()
}

func TestStreamCloseBeforeRunIsSafe(t *testing.T) {
	s := NewStream("ws://127.0.0.1:1/ws/orders/user_x/", false, slog.Default())
	s.Close()
	s.Close()
}
