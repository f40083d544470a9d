package rabbitmq_test

import (
	"context"
	"testing"

	"catalog/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := rabbitmq.NewClient(rabbitmq.Config{URL: "http://not-a-broker"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to RabbitMQ")
}

func TestClient_WithoutChannel(t *testing.T) {
	var c rabbitmq.Client

	assert.Error(t, c.Publish(context.Background(), rabbitmq.DefaultQueue, []byte("{}")))
	assert.Error(t, c.PublishJSON(context.Background(), map[string]string{"type": "product.created"}))
	assert.Error(t, c.Consume(func(amqp.Delivery) error { return nil }))
	assert.NoError(t, c.Close())
}

func TestClient_PublishJSON_RejectsUnmarshalable(t *testing.T) {
	var c rabbitmq.Client

	err := c.PublishJSON(context.Background(), make(chan int))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "marshal")
}
