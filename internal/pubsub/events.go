// Package pubsub provides a small generic publish/subscribe event system
// used to move log entries and file-watch notifications into the Bubble Tea
// update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	ChangedEvent EventType = "changed"
	RemovedEvent EventType = "removed"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
