package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("vitals")
	defer hub.Unregister(client)

	payload := []byte(`{"bpm":72}`)
	hub.Broadcast("vitals", payload)

	select {
	case msg := <-client.Send:
		if string(msg) != `{"bpm":72}` {
			t.Fatalf("unexpected message")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("vitals")
	if ch == "" {
		t.Fatalf("expected channel")
	}
	if feedFromChannel(ch) != "vitals" {
		t.Fatalf("unexpected feed name")
	}
	if feedFromChannel("bad") != "" {
		t.Fatalf("expected empty feed name")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("vitals")
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
}

func TestHubRedisBridgeForwards(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register("vitals")
	defer hub.Unregister(ws)

	// a publish from another instance arrives over the bridge
	if err := client.Publish(context.Background(), "stream:vitals:broadcast", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	select {
	case msg := <-ws.Send:
		if string(msg) != "pong" {
			t.Fatalf("unexpected forwarded message")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for forwarded message")
	}
}

func TestHubBroadcastDeliversOnceWithRedis(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register("vitals")
	defer hub.Unregister(ws)

	hub.Broadcast("vitals", []byte("x"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "x" {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	// no second copy from the bridge echo
	select {
	case msg := <-ws.Send:
		t.Fatalf("duplicate delivery: %q", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
