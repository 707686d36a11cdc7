package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type kafkaSink struct {
	writer  *kafka.Writer
	brokers []string
}

func newKafkaSink(cfg *Config) *kafkaSink {
	return &kafkaSink{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
			Topic:                  cfg.Kafka.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		brokers: cfg.Kafka.Brokers,
	}
}

// deliver writes the JSON-encoded event keyed by request id, so events for one
// request land on the same partition.
func (s *kafkaSink) deliver(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.ID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(e.Name)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", s.writer.Topic, err)
	}
	return nil
}

// check dials the first broker that answers.
func (s *kafkaSink) check(ctx context.Context) error {
	var last error
	for _, addr := range s.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			last = err
			continue
		}
		return conn.Close()
	}
	return fmt.Errorf("kafka dial: %w", last)
}

func (s *kafkaSink) close() error {
	return s.writer.Close()
}
