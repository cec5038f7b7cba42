package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "DH001", string(key))
		assert.Equal(t, "test-topic", msg.Topic)
		require.Len(t, msg.Headers, 1)
		assert.Equal(t, "x-test", string(msg.Headers[0].Key))
		return nil
	})

	producer := newProducer(mockProducer, log.WithField("component", "kafka-producer-test"))
	err := producer.PublishEvent("test-topic", "DH001", map[string]string{"status": "pending"}, map[string]string{"x-test": "1"})
	require.NoError(t, err)

	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := newProducer(mockProducer, nil)
	err := producer.PublishEvent(TopicOrderEvents, "DH001", struct{}{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, nil)

	err := producer.PublishEvent(TopicOrderEvents, "DH001", make(chan int), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal")

	require.NoError(t, mockProducer.Close())
}

func TestProducer_NilGuards(t *testing.T) {
	var producer *Producer
	assert.Error(t, producer.PublishEvent(TopicOrderEvents, "DH001", nil, nil))
	assert.NoError(t, producer.Close())

	_, err := NewProducer(nil, nil)
	assert.Error(t, err)
}
