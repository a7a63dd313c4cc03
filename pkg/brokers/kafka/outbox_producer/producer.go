package outbox_producer

import (
	"fmt"

	"github.com/IBM/sarama"
)

// NewProducer returns a sync producer that waits for all in-sync replicas,
// so a relayed outbox row is only deleted once Kafka owns the event.
func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("start sync producer: %w", err)
	}

	return producer, nil
}
