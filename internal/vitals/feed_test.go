package vitals

import (
	"errors"
	"testing"
)

type fakeBroker struct {
	handler      func(topic string, payload []byte)
	topic        string
	unsubscribed []string
	connected    bool
	subscribeErr error
}

func (f *fakeBroker) Subscribe(topic string, handler func(string, []byte)) error {
	if f.subscribeErr != nil {
		return f.subscribeErr
	}
	f.topic = topic
	f.handler = handler
	return nil
}

func (f *fakeBroker) Unsubscribe(topics ...string) error {
	f.unsubscribed = append(f.unsubscribed, topics...)
	return nil
}

func (f *fakeBroker) IsConnected() bool { return f.connected }
func (f *fakeBroker) Disconnect()       {}

func TestFeedDeliversSamplesInOrder(t *testing.T) {
	broker := &fakeBroker{connected: true}
	feed := NewFeed(broker, "Dados_vitais")
	if err := feed.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if broker.topic != "Dados_vitais" {
		t.Fatalf("unexpected topic: %s", broker.topic)
	}

	var got []Sample
	id := feed.Subscribe(func(s Sample) { got = append(got, s) })

	broker.handler("Dados_vitais", []byte(`{"bpm":70}`))
	broker.handler("Dados_vitais", []byte(`{"bpm":75,"oxigenacao":98}`))
	broker.handler("Dados_vitais", []byte(`{"bpm":72}`))

	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	if got[0].HeartRate != 70 || got[1].HeartRate != 75 || got[2].HeartRate != 72 {
		t.Fatalf("samples out of order: %+v", got)
	}
	if got[1].OxygenLevel != 98 || got[0].OxygenLevel != 0 {
		t.Fatalf("unexpected oxygen values: %+v", got)
	}

	feed.Unsubscribe(id)
	broker.handler("Dados_vitais", []byte(`{"bpm":99}`))
	if len(got) != 3 {
		t.Fatalf("delivery after unsubscribe")
	}
}

func TestFeedSnapshotLeavesAbsentSeriesUntouched(t *testing.T) {
	broker := &fakeBroker{connected: true}
	feed := NewFeed(broker, "Dados_vitais")
	if err := feed.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	agg := NewAggregator()
	feed.Subscribe(agg.Observe)

	broker.handler("Dados_vitais", []byte(`{"oxigenacao":97}`))
	broker.handler("Dados_vitais", []byte(`{"bpm":80}`))

	hr, ox := agg.Snapshot()
	if len(ox.Values) != 1 || ox.Values[0] != 97 {
		t.Fatalf("bpm-only snapshot touched oxygen series: %v", ox.Values)
	}
	if len(hr.Values) != 1 || hr.Values[0] != 80 {
		t.Fatalf("unexpected heart rate series: %v", hr.Values)
	}
}

func TestFeedRawSubscribers(t *testing.T) {
	broker := &fakeBroker{connected: true}
	feed := NewFeed(broker, "Dados_vitais")
	if err := feed.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	var raw []byte
	feed.SubscribeRaw(func(p []byte) { raw = p })

	payload := []byte(`{"bpm":70,"altitude":812.5}`)
	broker.handler("Dados_vitais", payload)
	if string(raw) != string(payload) {
		t.Fatalf("unexpected raw payload: %s", raw)
	}
}

func TestFeedErrorState(t *testing.T) {
	broker := &fakeBroker{connected: true}
	feed := NewFeed(broker, "Dados_vitais")
	if err := feed.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	delivered := 0
	feed.Subscribe(func(Sample) { delivered++ })

	broker.handler("Dados_vitais", []byte(`not json`))
	if feed.LastError() == nil {
		t.Fatalf("expected decode error state")
	}
	if delivered != 0 {
		t.Fatalf("bad snapshot should not be delivered")
	}

	// delivery continues after an error
	broker.handler("Dados_vitais", []byte(`{"bpm":64}`))
	if delivered != 1 {
		t.Fatalf("expected delivery to resume")
	}
	if feed.LastError() != nil {
		t.Fatalf("expected error state cleared")
	}

	feed.NoteConnectionLost(errors.New("broker gone"))
	if feed.LastError() == nil {
		t.Fatalf("expected connection error state")
	}

	broker.connected = false
	if feed.Connected() {
		t.Fatalf("expected disconnected state")
	}

	feed.Close()
	if len(broker.unsubscribed) != 1 || broker.unsubscribed[0] != "Dados_vitais" {
		t.Fatalf("expected topic unsubscribed on close")
	}
}

func TestFeedStartError(t *testing.T) {
	broker := &fakeBroker{subscribeErr: errors.New("no broker")}
	feed := NewFeed(broker, "Dados_vitais")
	if err := feed.Start(); err == nil {
		t.Fatalf("expected subscribe error")
	}
}
