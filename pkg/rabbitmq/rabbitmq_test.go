package rabbitmq_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"

	"storefront/pkg/rabbitmq"
)

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	handle := rabbitmq.LogEvent(log)

	err := handle(amqp.Delivery{Type: "user.registered", Body: []byte(`{"email":"a@b.com"}`)})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"event":"user.registered"`)
	assert.Contains(t, buf.String(), "a@b.com")

	err = handle(amqp.Delivery{Type: "user.registered", Body: []byte("not json")})
	assert.Error(t, err)
}

func TestPublishWithoutChannel(t *testing.T) {
	var c rabbitmq.Client
	assert.Error(t, c.Publish("product.created", map[string]int{"product_id": 1}))
	assert.Error(t, c.ConsumeEvents(func(amqp.Delivery) error { return nil }))
}
