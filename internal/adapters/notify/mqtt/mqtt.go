// Package mqtt publica cada alerta como JSON en un topic con QoS 1.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"economic-calendar/internal/ports/notify"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const qos = 1

type Options struct {
	Broker   string
	ClientID string
	Topic    string
	Timeout  time.Duration
}

type Notifier struct {
	client  paho.Client
	topic   string
	timeout time.Duration
}

// Connect abre la conexión al broker y espera hasta Timeout.
func Connect(opts Options) (*Notifier, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt notifier: broker required")
	}
	if opts.Topic == "" {
		return nil, errors.New("mqtt notifier: topic required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	co := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetConnectTimeout(opts.Timeout).
		SetAutoReconnect(true)
	c := paho.NewClient(co)

	tok := c.Connect()
	if !tok.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("mqtt notifier: connect %s: timeout", opts.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt notifier: connect %s: %w", opts.Broker, err)
	}
	return New(c, opts.Topic, opts.Timeout), nil
}

// New envuelve un cliente ya conectado.
func New(client paho.Client, topic string, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{client: client, topic: topic, timeout: timeout}
}

func (n *Notifier) Name() string { return "mqtt" }

func (n *Notifier) Notify(ctx context.Context, alerts []notify.Alert) error {
	for _, a := range alerts {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("mqtt notifier: marshal %s: %w", a.EventID, err)
		}
		tok := n.client.Publish(n.topic, qos, false, payload)
		if !tok.WaitTimeout(n.timeout) {
			return fmt.Errorf("mqtt notifier: publish %s: timeout", a.EventID)
		}
		if err := tok.Error(); err != nil {
			return fmt.Errorf("mqtt notifier: publish %s: %w", a.EventID, err)
		}
	}
	return nil
}

func (n *Notifier) Close() {
	n.client.Disconnect(250)
}
