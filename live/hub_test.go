package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "ev1",
	}

	hub.register <- client

	msg, _ := json.Marshal(map[string]any{"action": "vote_update", "venueid": "v1"})
	hub.Broadcast("ev1", msg)

	select {
	case got := <-client.Send:
		if string(got) != string(msg) {
			t.Fatalf("expected %s, got %s", msg, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for broadcast")
	}

	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), Room: "ev1"}
	b := &Client{Send: make(chan []byte, 10), Room: "ev2"}
	hub.register <- a
	hub.register <- b

	hub.Broadcast("ev1", []byte("only ev1"))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for room broadcast")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("ev2 client received foreign message: %s", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubStopUnblocksRegister(t *testing.T) {
	// no Run loop: once the hub is stopped nothing ever receives on the
	// register channel, which is exactly when addClient used to block
	hub := NewHub()
	hub.Stop()

	done := make(chan bool, 1)
	go func() {
		done <- hub.addClient(&Client{Send: make(chan []byte, 1), Room: "ev1"})
	}()

	select {
	case accepted := <-done:
		if accepted {
			t.Fatal("a stopped hub must refuse new clients")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("registering against a stopped hub blocked")
	}
}
