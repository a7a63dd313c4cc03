package send

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

const eventTypeHeader = "event_type"

type outBoxGetter interface {
	FetchUnprocessedMessages(ctx context.Context) (messages []models.OutBoxMessage, err error)
}

type outBoxRemover interface {
	Delete(ctx context.Context, eventIDs []int) error
}

type Service struct {
	log              logger.Logger
	topic            string
	producer         sarama.SyncProducer
	messageProcessor outBoxGetter
	outBoxRemover    outBoxRemover
}

func New(
	log logger.Logger,
	topic string,
	producer sarama.SyncProducer,
	outBoxGetter outBoxGetter,
	outBoxRemover outBoxRemover,
) *Service {
	return &Service{
		log:              log,
		topic:            topic,
		producer:         producer,
		messageProcessor: outBoxGetter,
		outBoxRemover:    outBoxRemover,
	}
}

// Send relays one batch of pending outbox rows and returns how many were sent.
// Rows are deleted only after Kafka accepted the whole batch, so a crash in
// between re-sends them; consumers dedupe on the event_uuid header.
func (s *Service) Send(ctx context.Context) (int, error) {
	const op = "services.outBox.send.Send"

	messages, err := s.messageProcessor.FetchUnprocessedMessages(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: fetch unprocessed messages: %w", op, err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	saramaMessages := make([]*sarama.ProducerMessage, 0, len(messages))
	processedMessagesIDs := make([]int, 0, len(messages))

	for _, msg := range messages {
		saramaMessages = append(saramaMessages, &sarama.ProducerMessage{
			Topic: s.topic,
			Key:   sarama.StringEncoder(msg.AggregateID.String()),
			Value: sarama.ByteEncoder(msg.Payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte(eventTypeHeader), Value: []byte(msg.EventType)},
				{Key: []byte("event_uuid"), Value: []byte(msg.EventUUID.String())},
			},
		})

		processedMessagesIDs = append(processedMessagesIDs, msg.ID)
	}

	if err = s.producer.SendMessages(saramaMessages); err != nil {
		s.log.Error(op, logger.String("error", err.Error()))
		return 0, fmt.Errorf("%s: send messages: %w", op, err)
	}

	if err = s.outBoxRemover.Delete(ctx, processedMessagesIDs); err != nil {
		return 0, fmt.Errorf("%s: remove messages: %w", op, err)
	}

	s.log.Info(op, logger.Int("sent", len(saramaMessages)))

	return len(saramaMessages), nil
}

// Drain calls Send until the outbox is empty or a batch fails.
func (s *Service) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		sent, err := s.Send(ctx)
		total += sent
		if err != nil || sent == 0 {
			return total, err
		}

		if err = ctx.Err(); err != nil {
			return total, err
		}
	}
}
