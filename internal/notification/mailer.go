package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

//go:generate mockgen -source=mailer.go -destination=mocks/mock.go -package=mocks

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type publisher interface {
	Publish(ctx context.Context, topic string, key string, value []byte) error
}

// KafkaMailer hands the email to the mail worker as a job on a Kafka topic.
type KafkaMailer struct {
	topic     string
	publisher publisher
}

func NewKafkaMailer(topic string, publisher publisher) *KafkaMailer {
	return &KafkaMailer{topic: topic, publisher: publisher}
}

func (m *KafkaMailer) Send(ctx context.Context, email Email) error {
	const op = "notification.KafkaMailer.Send"

	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("%s: marshal email: %w", op, err)
	}

	if err = m.publisher.Publish(ctx, m.topic, email.OrderID, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type LogMailer struct {
	log logger.Logger
}

func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.log.InfoContext(ctx, "notification.LogMailer.Send",
		logger.String("to", email.To),
		logger.String("subject", email.Subject),
		logger.String("body", email.Body),
	)

	return nil
}
