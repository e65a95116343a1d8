package events

import "time"

// Event types
const (
	AccountRegistered = "account.registered"

	MessageCreated = "message.created"
	MessageUpdated = "message.updated"
	MessageDeleted = "message.deleted"
)

// Stream names
const (
	AccountEventsStream = "account.events"
	MessageEventsStream = "message.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountRegisteredEvent struct {
	AccountID int    `json:"accountId"`
	Username  string `json:"username"`
}

// Message events
type MessageCreatedEvent struct {
	MessageID int `json:"messageId"`
	PostedBy  int `json:"postedBy"`
}

type MessageUpdatedEvent struct {
	MessageID int `json:"messageId"`
}

type MessageDeletedEvent struct {
	MessageID int `json:"messageId"`
}
