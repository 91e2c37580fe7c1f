package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeDocumentProcessed = "document_processed"
	NotificationTypeDocumentFailed    = "document_failed"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      string
	Title     string
	Body      string
	Metadata  json.RawMessage
	IsRead    bool
	CreatedAt time.Time
}
