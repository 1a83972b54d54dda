// Package kafkasink publica cada evento como un mensaje: key = id, value = JSON.
package kafkasink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"economic-calendar/internal/domain/calendar"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Sink struct {
	w       messageWriter
	timeout time.Duration
}

// New usa Hash como balancer para que un mismo id caiga siempre en la misma partición.
func New(brokers []string, topic string, timeout time.Duration) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka sink: brokers required")
	}
	if topic == "" {
		return nil, errors.New("kafka sink: topic required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Sink{w: w, timeout: timeout}, nil
}

func (s *Sink) Name() string { return "kafka" }

func (s *Sink) Write(ctx context.Context, events []calendar.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := Messages(events)
	if err != nil {
		return err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka sink: write: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.w.Close()
}

// Messages arma un mensaje por evento, en orden.
func Messages(events []calendar.Event) ([]kafka.Message, error) {
	out := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(calendar.ToRecord(e))
		if err != nil {
			return nil, fmt.Errorf("kafka sink: marshal %s: %w", e.ID, err)
		}
		out = append(out, kafka.Message{
			Key:   []byte(e.ID),
			Value: b,
			Headers: []kafka.Header{
				{Key: "provider", Value: []byte(e.Provider)},
			},
		})
	}
	return out, nil
}
