// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

// KafkaPublisher writes keyed messages to one topic.
type KafkaPublisher struct {
	w *kgo.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kgo.Writer{
		Addr:         kgo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

// Publish writes value under key. Messages with the same key share a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, value []byte) error {
	return p.w.WriteMessages(ctx, kgo.Message{Key: []byte(key), Value: value, Time: time.Now()})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
