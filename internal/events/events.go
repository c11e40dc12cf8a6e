// Package events fans gallery changes out to interested parties.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAcquaintanceEnrolled Type = "acquaintance.enrolled"
	TypeAcquaintanceDeleted  Type = "acquaintance.deleted"
)

// Event is a change in one user's gallery
type Event struct {
	Type      Type        `json:"type"`
	UserID    uuid.UUID   `json:"user_id"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// New stamps an event with the current time
func New(eventType Type, userID uuid.UUID, data interface{}) Event {
	return Event{
		Type:      eventType,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every wrapped publisher and joins their errors
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
