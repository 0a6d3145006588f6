package kafka

import (
	"fleet-registry/lib/config"

	"github.com/segmentio/kafka-go"
)

// InitKafkaWriter returns a writer for the given topic, or nil when no
// brokers are configured so the caller can run without the audit stream.
func InitKafkaWriter(topic string) *kafka.Writer {
	brokers := config.KafkaBrokers()
	if len(brokers) == 0 {
		return nil
	}

	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
