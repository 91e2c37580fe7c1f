package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation used when reconstructing events
// off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// DocumentProcessedEvent is emitted after a document's embeddings have
// been written, so the owner can be notified.
type DocumentProcessedEvent struct {
	UserId     string
	DocumentId string
	Name       string
	Failed     bool
	Reason     string
	OccurredAt time.Time
}

func (e DocumentProcessedEvent) EventType() string {
	if e.Failed {
		return "DOCUMENT_FAILED"
	}
	return "DOCUMENT_PROCESSED"
}

func (e DocumentProcessedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     e.UserId,
		"document_id": e.DocumentId,
		"name":        e.Name,
		"failed":      e.Failed,
		"reason":      e.Reason,
	}
}

func (e DocumentProcessedEvent) Timestamp() time.Time {
	return e.OccurredAt
}
