package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatDocumentLink associates a document with a chat. At most one link
// exists per (ChatSessionId, DocumentId) pair; re-linking updates
// IsContextActive on the existing row.
type ChatDocumentLink struct {
	Id              uuid.UUID
	ChatSessionId   uuid.UUID
	DocumentId      uuid.UUID
	IsContextActive bool
	LinkedAt        time.Time
}
