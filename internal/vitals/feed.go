package vitals

import (
	"encoding/json"
	"log"
	"sync"
)

// Feed subscribes to the wearable's snapshot topic and fans each decoded
// sample out to subscribers in arrival order. Each message is a full
// current-state snapshot, not a delta.
type Feed struct {
	broker Broker
	topic  string

	mu      sync.Mutex
	subs    map[int]func(Sample)
	rawSubs map[int]func([]byte)
	nextID  int
	lastErr error
}

func NewFeed(broker Broker, topic string) *Feed {
	return &Feed{
		broker:  broker,
		topic:   topic,
		subs:    map[int]func(Sample){},
		rawSubs: map[int]func([]byte){},
	}
}

// Start opens the underlying subscription. Delivery continues until Close.
func (f *Feed) Start() error {
	return f.broker.Subscribe(f.topic, f.handleMessage)
}

// Close releases the subscription and the underlying connection.
func (f *Feed) Close() {
	_ = f.broker.Unsubscribe(f.topic)
	f.broker.Disconnect()
}

// Subscribe registers fn for every decoded sample and returns a handle for
// Unsubscribe.
func (f *Feed) Subscribe(fn func(Sample)) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.subs[f.nextID] = fn
	return f.nextID
}

// SubscribeRaw registers fn for the undecoded snapshot payload, used to relay
// messages to dashboard websockets without re-encoding.
func (f *Feed) SubscribeRaw(fn func([]byte)) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.rawSubs[f.nextID] = fn
	return f.nextID
}

func (f *Feed) Unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, id)
	delete(f.rawSubs, id)
}

// Connected reports whether the transport currently has a live connection.
// Subscribers keep receiving once the transport recovers.
func (f *Feed) Connected() bool {
	return f.broker.IsConnected()
}

// NoteConnectionLost records a transport failure so readers can surface a
// connection-error state. Intended as the MQTT connection-lost handler.
func (f *Feed) NoteConnectionLost(err error) {
	f.mu.Lock()
	f.lastErr = err
	f.mu.Unlock()
	log.Printf("vitals feed connection lost: %v", err)
}

func (f *Feed) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Feed) handleMessage(_ string, payload []byte) {
	var sample Sample
	if err := json.Unmarshal(payload, &sample); err != nil {
		f.mu.Lock()
		f.lastErr = err
		f.mu.Unlock()
		log.Printf("vitals feed: bad snapshot: %v", err)
		return
	}

	f.mu.Lock()
	f.lastErr = nil
	subs := make([]func(Sample), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	rawSubs := make([]func([]byte), 0, len(f.rawSubs))
	for _, fn := range f.rawSubs {
		rawSubs = append(rawSubs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(sample)
	}
	for _, fn := range rawSubs {
		fn(payload)
	}
}
