package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans live payloads out to websocket clients watching a named feed
// (e.g. "vitals"). With Redis configured, every broadcast travels through
// pub/sub so clients connected to other instances receive it too; local
// clients then get it from the same bridge, exactly once.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Feed string
	Send chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, "stream:*:broadcast")
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Printf("stream bridge unavailable, local delivery only: %v", err)
			_ = pubsub.Close()
		} else {
			h.redis = redisClient
			go h.forward(pubsub)
		}
	}
	return h
}

func (h *Hub) Register(feed string) *Client {
	client := &Client{
		Feed: feed,
		Send: make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[feed] == nil {
		h.clients[feed] = map[*Client]struct{}{}
	}
	h.clients[feed][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if feedClients, ok := h.clients[client.Feed]; ok {
		delete(feedClients, client)
		if len(feedClients) == 0 {
			delete(h.clients, client.Feed)
		}
	}
	close(client.Send)
}

// Broadcast sends a payload to every client watching the feed. When the
// bridge is up, local clients are served by the bridge echo rather than
// directly, so each broadcast lands once no matter how it travels.
func (h *Hub) Broadcast(feed string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(feed), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error, delivering locally: %v", err)
	}
	h.deliver(feed, payload)
}

func (h *Hub) deliver(feed string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[feed]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) forward(pubsub *redis.PubSub) {
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		feed := feedFromChannel(msg.Channel)
		if feed == "" {
			continue
		}
		h.deliver(feed, []byte(msg.Payload))
	}
}

func redisChannel(feed string) string {
	return "stream:" + feed + ":broadcast"
}

func feedFromChannel(channel string) string {
	if !strings.HasPrefix(channel, "stream:") || !strings.HasSuffix(channel, ":broadcast") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(channel, "stream:"), ":broadcast")
}
