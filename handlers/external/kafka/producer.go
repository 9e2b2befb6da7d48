// Package kafka publishes prediction log records to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/predictlog"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/rs/zerolog/log"
)

const flushTimeout = 5 * time.Second

// producer is the part of *kafka.Producer the sink uses.
type producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

// PredictLogSink writes one message per prediction, keyed by client so a
// client's records stay ordered within a partition.
type PredictLogSink struct {
	producer producer
	topic    string
}

func NewPredictLogSink(bootstrapServers, topic, clientID string) (*PredictLogSink, error) {
	if bootstrapServers == "" || topic == "" {
		return nil, fmt.Errorf("KAFKA_BOOTSTRAP_SERVERS and KAFKA_PREDICT_LOG_TOPIC must be set")
	}
	configMap := kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"client.id":         clientID,
	}
	p, err := kafka.NewProducer(&configMap)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	go drainEvents(p.Events())
	return newPredictLogSink(p, topic), nil
}

func newPredictLogSink(p producer, topic string) *PredictLogSink {
	return &PredictLogSink{producer: p, topic: topic}
}

// drainEvents consumes delivery reports so the producer never blocks on them.
func drainEvents(events chan kafka.Event) {
	for e := range events {
		if ev, ok := e.(*kafka.Message); ok && ev.TopicPartition.Error != nil {
			log.Error().Err(ev.TopicPartition.Error).
				Str("topic", *ev.TopicPartition.Topic).
				Msg("kafka delivery failed")
		}
	}
}

func (s *PredictLogSink) Log(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) error {
	record, err := predictlog.NewRecord(ctx, tenant, req, reply)
	if err != nil {
		return fmt.Errorf("encode prediction log record: %w", err)
	}
	value, err := record.Marshal()
	if err != nil {
		return fmt.Errorf("encode prediction log record: %w", err)
	}
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &s.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(tenant),
		Value: value,
	}
	if record.RequestID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "request_id", Value: []byte(record.RequestID)})
	}
	if err := s.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("kafka produce error: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the producer.
func (s *PredictLogSink) Close() {
	if remaining := s.producer.Flush(int(flushTimeout.Milliseconds())); remaining > 0 {
		log.Warn().Int("remaining", remaining).Msg("kafka producer closed with undelivered messages")
	}
	s.producer.Close()
}
