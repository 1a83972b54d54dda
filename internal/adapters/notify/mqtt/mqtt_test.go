package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"economic-calendar/internal/ports/notify"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient solo implementa Publish; el resto del interfaz queda nil.
type fakeClient struct {
	paho.Client
	sent []published
	err  error
}

func (f *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	f.sent = append(f.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return doneToken{err: f.err}
}

func TestNotify_PublishesJSONWithQoS1(t *testing.T) {
	fc := &fakeClient{}
	n := New(fc, "calendar/upcoming", time.Second)

	alerts := []notify.Alert{
		{EventID: "abc", Title: "CPI", Country: "USD", Importance: "high", Line: "[2024-01-05 14:30] USD • CPI • HIGH"},
	}
	if err := n.Notify(context.Background(), alerts); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(fc.sent) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(fc.sent))
	}
	p := fc.sent[0]
	if p.topic != "calendar/upcoming" || p.qos != 1 {
		t.Fatalf("unexpected topic/qos %s/%d", p.topic, p.qos)
	}
	var got notify.Alert
	if err := json.Unmarshal(p.payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.EventID != "abc" || got.Line != alerts[0].Line {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestNotify_PublishError(t *testing.T) {
	n := New(&fakeClient{err: errors.New("not connected")}, "t", time.Second)
	if err := n.Notify(context.Background(), []notify.Alert{{EventID: "x"}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestConnect_Validates(t *testing.T) {
	if _, err := Connect(Options{Topic: "t"}); err == nil {
		t.Fatalf("expected error without broker")
	}
	if _, err := Connect(Options{Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatalf("expected error without topic")
	}
}
