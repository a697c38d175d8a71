package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Event types published after successful writes.
const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
)

// EventPublisher delivers domain events to interested consumers.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// UserRegisteredEvent is the payload of EventUserRegistered.
type UserRegisteredEvent struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ProductCreatedEvent is the payload of EventProductCreated.
type ProductCreatedEvent struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// publish sends an event if a publisher is configured. Failures are logged
// and never fail the write that triggered them.
func publish(events EventPublisher, log logrus.FieldLogger, eventType string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(eventType, payload); err != nil {
		log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}
