package producer

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

func TestPublish(t *testing.T) {
	cfg := NewConfig()
	mockProducer := mocks.NewAsyncProducer(t, cfg)

	var (
		gotTopic string
		got      []byte
	)
	mockProducer.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		gotTopic = msg.Topic

		value, err := msg.Value.Encode()
		got = value

		return err
	})

	p := Wrap(logger.NewDiscard(), mockProducer)

	err := p.Publish(context.Background(), "email_jobs", "order-1", []byte(`{"to":"asha@example.com"}`))
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.Equal(t, "email_jobs", gotTopic)
	require.JSONEq(t, `{"to":"asha@example.com"}`, string(got))
}

func TestPublishAfterClose(t *testing.T) {
	p := Wrap(logger.NewDiscard(), mocks.NewAsyncProducer(t, NewConfig()))
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), "email_jobs", "order-1", []byte("{}"))
	require.Error(t, err)
}
