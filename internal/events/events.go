// Package events publishes change notifications for committed mutations.
package events

import (
	"context"
	"time"
)

// Actions.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Event describes one committed change to one record.
type Event struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
}

// Publisher delivers events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

// Publish discards e.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }
