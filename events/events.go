package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeSessionStarted EventType = "session_started"
	EventTypeMemberVerified EventType = "member_verified"
	EventTypeMemberRejected EventType = "member_rejected"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// SessionStartedEvent fires when a member presses the start button and
// enters the question flow.
type SessionStartedEvent struct {
	SessionID   string
	UserID      string
	GuildID     string
	DisplayName string
}

func (e SessionStartedEvent) Type() EventType {
	return EventTypeSessionStarted
}

// MemberVerifiedEvent fires after a member passed allow-list verification
// and all finalization side effects ran.
type MemberVerifiedEvent struct {
	SessionID   string
	UserID      string
	GuildID     string
	DisplayName string
	Email       string
	ChannelID   string // empty when invite detection was undetermined
	ChannelName string
}

func (e MemberVerifiedEvent) Type() EventType {
	return EventTypeMemberVerified
}

// MemberRejectedEvent fires when a completed session's email is not on the
// allow-list and the session was discarded.
type MemberRejectedEvent struct {
	SessionID   string
	UserID      string
	GuildID     string
	DisplayName string
	Email       string
}

func (e MemberRejectedEvent) Type() EventType {
	return EventTypeMemberRejected
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
