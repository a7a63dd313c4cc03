package producer

import (
	"context"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

// Producer publishes fire-and-forget messages. Nothing waits on broker acks,
// delivery failures are only logged.
type Producer struct {
	log logger.Logger

	producer sarama.AsyncProducer

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewConfig() *sarama.Config {
	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForLocal
	producerConfig.Producer.Compression = sarama.CompressionNone
	producerConfig.Producer.Return.Successes = true
	producerConfig.Producer.Return.Errors = true

	return producerConfig
}

func NewProducer(log logger.Logger, brokerAddress []string) (*Producer, error) {
	producer, err := sarama.NewAsyncProducer(brokerAddress, NewConfig())
	if err != nil {
		return nil, fmt.Errorf("start async producer: %w", err)
	}

	return Wrap(log, producer), nil
}

// Wrap starts draining the acks of an existing async producer.
func Wrap(log logger.Logger, producer sarama.AsyncProducer) *Producer {
	p := &Producer{
		log:      log,
		producer: producer,
		done:     make(chan struct{}),
	}

	go p.drain()

	return p
}

func (p *Producer) drain() {
	const op = "brokers.kafka.producer.drain"
	defer close(p.done)

	errs, successes := p.producer.Errors(), p.producer.Successes()
	for errs != nil || successes != nil {
		select {
		case sendErr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}

			p.log.Warn(op, logger.String("topic", sendErr.Msg.Topic), logger.String("error", sendErr.Err.Error()))
		case success, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}

			p.log.Debug(op, logger.String("topic", success.Topic), logger.Int("partition", int(success.Partition)))
		}
	}
}

func (p *Producer) Publish(ctx context.Context, topic string, key string, value []byte) error {
	const op = "brokers.kafka.producer.Publish"

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("%s: producer is closed", op)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	err := p.producer.Close()
	<-p.done

	return err
}
