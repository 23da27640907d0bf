package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newStubbedClient(h *Hub, userID int64, buffer int) *Client {
	return &Client{
		hub:    h,
		send:   make(chan []byte, buffer),
		userID: userID,
		logger: zerolog.Nop(),
	}
}

func TestDispatchDeliversToOpenClients(t *testing.T) {
	h := NewHub(zerolog.Nop())
	client := newStubbedClient(h, 5, 4)
	h.clients[5] = map[*Client]bool{client: true}

	h.dispatchEvent(&Event{UserID: 5, Type: "ENROLLMENT_APPROVED", Title: "t", Timestamp: time.Now()})

	select {
	case data := <-client.send:
		if len(data) == 0 {
			t.Fatal("empty payload delivered")
		}
	default:
		t.Fatal("no payload delivered to the client")
	}
}

func TestDispatchDropsSlowClientWithoutBlocking(t *testing.T) {
	h := NewHub(zerolog.Nop())
	slow := newStubbedClient(h, 5, 0)
	h.clients[5] = map[*Client]bool{slow: true}

	done := make(chan struct{})
	go func() {
		// Nobody drains slow.send; dispatch must still return and
		// evict the client rather than waiting on it.
		h.dispatchEvent(&Event{UserID: 5, Type: "CERTIFICATE_READY", Title: "t", Timestamp: time.Now()})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch blocked on a slow client")
	}

	if got := h.ConnectionCount(5); got != 0 {
		t.Fatalf("slow client still registered, ConnectionCount = %d", got)
	}
	select {
	case _, open := <-slow.send:
		if open {
			t.Fatal("slow client's send channel delivered instead of closing")
		}
	default:
		t.Fatal("slow client's send channel not closed")
	}
}

func TestDispatchIgnoresUnknownUser(t *testing.T) {
	h := NewHub(zerolog.Nop())
	h.dispatchEvent(&Event{UserID: 99, Type: "NEW_LESSON", Timestamp: time.Now()})
	if got := h.ConnectionCount(99); got != 0 {
		t.Fatalf("ConnectionCount = %d, want 0", got)
	}
}

func TestPushDropsWhenQueueFull(t *testing.T) {
	h := NewHub(zerolog.Nop())
	// Hub loop is not running, so the queue only fills
	for i := 0; i < cap(h.events)+10; i++ {
		h.Push(&Event{UserID: 1, Type: "NEW_LESSON", Timestamp: time.Now()})
	}
	if len(h.events) != cap(h.events) {
		t.Fatalf("queue holds %d events, want %d", len(h.events), cap(h.events))
	}
}
